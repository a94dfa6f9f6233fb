package snapshot

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

type userWire struct {
	ID            string            `json:"id"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	DateOfBirth   string            `json:"dateOfBirth"`
	AccountType   string            `json:"accountType"`
	AccountNumber string            `json:"accountNumber"`
	Balance       json.Number       `json:"balance"`
	CreatedAt     string            `json:"createdAt"`
	Transactions  []transactionWire `json:"transactions"`
	Investments   investmentsWire   `json:"investments"`
}

type transactionWire struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Balance     json.Number `json:"balance"`
}

type investmentsWire struct {
	SIP []sipWire `json:"sip"`
	FD  []fdWire  `json:"fd"`
	RD  []rdWire  `json:"rd"`
}

type sipWire struct {
	ID            string      `json:"id"`
	FundName      string      `json:"fundName"`
	MonthlyAmount json.Number `json:"monthlyAmount"`
	StartDate     string      `json:"startDate"`
	Duration      int         `json:"duration"`
	CurrentValue  json.Number `json:"currentValue"`
}

type fdWire struct {
	ID             string      `json:"id"`
	Amount         json.Number `json:"amount"`
	InterestRate   json.Number `json:"interestRate"`
	Tenure         int         `json:"tenure"`
	StartDate      string      `json:"startDate"`
	MaturityDate   string      `json:"maturityDate"`
	MaturityAmount json.Number `json:"maturityAmount"`
}

type rdWire struct {
	ID             string      `json:"id"`
	MonthlyAmount  json.Number `json:"monthlyAmount"`
	InterestRate   json.Number `json:"interestRate"`
	Tenure         int         `json:"tenure"`
	StartDate      string      `json:"startDate"`
	MaturityDate   string      `json:"maturityDate"`
	CurrentValue   json.Number `json:"currentValue"`
	MaturityAmount json.Number `json:"maturityAmount,omitempty"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toWire(u domain.User) userWire {
	w := userWire{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		DateOfBirth:   u.DateOfBirth,
		AccountType:   u.AccountType,
		AccountNumber: u.AccountNumber,
		Balance:       number(u.Balance),
		CreatedAt:     u.CreatedAt,
		Transactions:  make([]transactionWire, 0, len(u.Transactions)),
		Investments: investmentsWire{
			SIP: make([]sipWire, 0, len(u.Investments.SIP)),
			FD:  make([]fdWire, 0, len(u.Investments.FD)),
			RD:  make([]rdWire, 0, len(u.Investments.RD)),
		},
	}
	for _, tx := range u.Transactions {
		w.Transactions = append(w.Transactions, transactionWire{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      number(tx.Amount),
			Description: tx.Description,
			Date:        timestamp(tx.Date),
			Balance:     number(tx.Balance),
		})
	}
	for _, s := range u.Investments.SIP {
		w.Investments.SIP = append(w.Investments.SIP, sipWire{
			ID:            s.ID,
			FundName:      s.FundName,
			MonthlyAmount: number(s.MonthlyAmount),
			StartDate:     timestamp(s.StartDate),
			Duration:      s.Duration,
			CurrentValue:  number(s.CurrentValue),
		})
	}
	for _, f := range u.Investments.FD {
		w.Investments.FD = append(w.Investments.FD, fdWire{
			ID:             f.ID,
			Amount:         number(f.Amount),
			InterestRate:   number(f.InterestRate),
			Tenure:         f.Tenure,
			StartDate:      timestamp(f.StartDate),
			MaturityDate:   timestamp(f.MaturityDate),
			MaturityAmount: number(f.MaturityAmount),
		})
	}
	for _, r := range u.Investments.RD {
		rw := rdWire{
			ID:            r.ID,
			MonthlyAmount: number(r.MonthlyAmount),
			InterestRate:  number(r.InterestRate),
			Tenure:        r.Tenure,
			StartDate:     timestamp(r.StartDate),
			MaturityDate:  timestamp(r.MaturityDate),
			CurrentValue:  number(r.CurrentValue),
		}
		if r.MaturityAmount.Valid {
			rw.MaturityAmount = number(r.MaturityAmount.Decimal)
		}
		w.Investments.RD = append(w.Investments.RD, rw)
	}
	return w
}

// EncodeUser serialises u in the snapshot wire schema.
func EncodeUser(u domain.User) ([]byte, error) {
	return json.Marshal(toWire(u))
}

// EncodeUsers serialises a user directory as a JSON array.
func EncodeUsers(users []domain.User) ([]byte, error) {
	out := make([]userWire, 0, len(users))
	for _, u := range users {
		out = append(out, toWire(u))
	}
	return json.Marshal(out)
}

// DecodeUser parses and validates one user record. Any missing or mistyped
// field yields a *domain.MalformedSnapshotError naming its path.
func DecodeUser(data []byte) (domain.User, error) {
	return decodeUser("", data)
}

// Valid reports whether data is an acceptable user record.
func Valid(data []byte) bool {
	_, err := DecodeUser(data)
	return err == nil
}

// DecodeUsers parses a user directory. The array itself must be well formed;
// each element is then validated independently and the ones that fail are
// returned as rejects instead of failing the whole directory.
func DecodeUsers(data []byte) ([]domain.User, []error, error) {
	items, err := parseArray("", data)
	if err != nil {
		return nil, nil, err
	}
	users := make([]domain.User, 0, len(items))
	var rejects []error
	for i, raw := range items {
		u, err := decodeUser(index("", i), raw)
		if err != nil {
			rejects = append(rejects, err)
			continue
		}
		users = append(users, u)
	}
	return users, rejects, nil
}

func decodeUser(path string, raw json.RawMessage) (domain.User, error) {
	o, err := parseObject(path, raw)
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"id", &u.ID},
		{"firstName", &u.FirstName},
		{"lastName", &u.LastName},
		{"email", &u.Email},
		{"phone", &u.Phone},
		{"dateOfBirth", &u.DateOfBirth},
		{"accountType", &u.AccountType},
		{"accountNumber", &u.AccountNumber},
		{"createdAt", &u.CreatedAt},
	} {
		if *f.dst, err = o.str(f.key); err != nil {
			return domain.User{}, err
		}
	}
	if u.Balance, err = o.num("balance"); err != nil {
		return domain.User{}, err
	}

	txs, err := o.array("transactions")
	if err != nil {
		return domain.User{}, err
	}
	u.Transactions = make([]domain.Transaction, 0, len(txs))
	for i, item := range txs {
		tx, err := decodeTransaction(index(join(path, "transactions"), i), item)
		if err != nil {
			return domain.User{}, err
		}
		u.Transactions = append(u.Transactions, tx)
	}

	inv, err := o.child("investments")
	if err != nil {
		return domain.User{}, err
	}
	if u.Investments, err = decodeInvestments(inv); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func decodeTransaction(path string, raw json.RawMessage) (domain.Transaction, error) {
	o, err := parseObject(path, raw)
	if err != nil {
		return domain.Transaction{}, err
	}
	var tx domain.Transaction
	if tx.ID, err = o.str("id"); err != nil {
		return domain.Transaction{}, err
	}
	kind, err := o.str("type")
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.Type = domain.EntryType(kind)
	if !tx.Type.IsValid() {
		return domain.Transaction{}, malformed(join(path, "type"), "must be credit or debit")
	}
	if tx.Amount, err = o.num("amount"); err != nil {
		return domain.Transaction{}, err
	}
	if tx.Description, err = o.str("description"); err != nil {
		return domain.Transaction{}, err
	}
	if tx.Date, err = o.timestamp("date"); err != nil {
		return domain.Transaction{}, err
	}
	if tx.Balance, err = o.num("balance"); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

func decodeInvestments(o object) (domain.Investments, error) {
	var inv domain.Investments

	sips, err := o.array("sip")
	if err != nil {
		return inv, err
	}
	inv.SIP = make([]domain.SIPInvestment, 0, len(sips))
	for i, raw := range sips {
		r, err := parseObject(index(join(o.path, "sip"), i), raw)
		if err != nil {
			return inv, err
		}
		var s domain.SIPInvestment
		if s.ID, err = r.str("id"); err != nil {
			return inv, err
		}
		if s.FundName, err = r.str("fundName"); err != nil {
			return inv, err
		}
		if s.MonthlyAmount, err = r.num("monthlyAmount"); err != nil {
			return inv, err
		}
		if s.StartDate, err = r.timestamp("startDate"); err != nil {
			return inv, err
		}
		if s.Duration, err = r.whole("duration"); err != nil {
			return inv, err
		}
		if s.CurrentValue, err = r.num("currentValue"); err != nil {
			return inv, err
		}
		inv.SIP = append(inv.SIP, s)
	}

	fds, err := o.array("fd")
	if err != nil {
		return inv, err
	}
	inv.FD = make([]domain.FDInvestment, 0, len(fds))
	for i, raw := range fds {
		r, err := parseObject(index(join(o.path, "fd"), i), raw)
		if err != nil {
			return inv, err
		}
		var f domain.FDInvestment
		if f.ID, err = r.str("id"); err != nil {
			return inv, err
		}
		if f.Amount, err = r.num("amount"); err != nil {
			return inv, err
		}
		if f.InterestRate, err = r.num("interestRate"); err != nil {
			return inv, err
		}
		if f.Tenure, err = r.whole("tenure"); err != nil {
			return inv, err
		}
		if f.StartDate, err = r.timestamp("startDate"); err != nil {
			return inv, err
		}
		if f.MaturityDate, err = r.timestamp("maturityDate"); err != nil {
			return inv, err
		}
		if f.MaturityAmount, err = r.num("maturityAmount"); err != nil {
			return inv, err
		}
		inv.FD = append(inv.FD, f)
	}

	rds, err := o.array("rd")
	if err != nil {
		return inv, err
	}
	inv.RD = make([]domain.RDInvestment, 0, len(rds))
	for i, raw := range rds {
		r, err := parseObject(index(join(o.path, "rd"), i), raw)
		if err != nil {
			return inv, err
		}
		var d domain.RDInvestment
		if d.ID, err = r.str("id"); err != nil {
			return inv, err
		}
		if d.MonthlyAmount, err = r.num("monthlyAmount"); err != nil {
			return inv, err
		}
		if d.InterestRate, err = r.num("interestRate"); err != nil {
			return inv, err
		}
		if d.Tenure, err = r.whole("tenure"); err != nil {
			return inv, err
		}
		if d.StartDate, err = r.timestamp("startDate"); err != nil {
			return inv, err
		}
		if d.MaturityDate, err = r.timestamp("maturityDate"); err != nil {
			return inv, err
		}
		if d.CurrentValue, err = r.num("currentValue"); err != nil {
			return inv, err
		}
		if d.MaturityAmount, err = r.optNum("maturityAmount"); err != nil {
			return inv, err
		}
		inv.RD = append(inv.RD, d)
	}
	return inv, nil
}
