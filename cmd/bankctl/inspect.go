package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/josh-kwaku/securebank/internal/currency"
	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
)

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list the user directory" }
func (*usersCmd) Usage() string {
	return `bankctl users

  Lists every readable entry of the user directory with its balance.
`
}
func (*usersCmd) SetFlags(*flag.FlagSet) {}

func (*usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	users, err := bank.Users(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printUsers(os.Stdout, users, *currencyCode)
	return subcommands.ExitSuccess
}

func printUsers(out io.Writer, users []domain.User, code string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tACCOUNT\tBALANCE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.AccountNumber, currency.Format(u.Balance, code))
	}
	w.Flush()
}

type statementCmd struct {
	kind   string
	search string
	sort   string
	limit  int
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "print the signed-in user's transactions" }
func (*statementCmd) Usage() string {
	return `bankctl statement [-type all|credit|debit] [-q <text>] [-sort newest|oldest] [-n <count>]

  Prints the current user's transaction log with the same filters the API
  offers.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "all", "Only show credit or debit entries.")
	f.StringVar(&c.search, "q", "", "Case-insensitive description search.")
	f.StringVar(&c.sort, "sort", "newest", "Sort order.")
	f.IntVar(&c.limit, "n", 0, "Show at most n entries (0 for all).")
}

func (c *statementCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	u, err := bank.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, service.Message(err))
		return subcommands.ExitFailure
	}
	txs, err := bank.Transactions(ctx, service.TransactionQuery{Type: c.kind, Search: c.search, Sort: c.sort})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.limit > 0 && len(txs) > c.limit {
		txs = txs[:c.limit]
	}

	fmt.Printf("%s (%s)  balance %s\n\n", u.FullName(), u.AccountNumber, currency.Format(u.Balance, *currencyCode))
	printStatement(os.Stdout, txs, *currencyCode)
	return subcommands.ExitSuccess
}

func printStatement(out io.Writer, txs []domain.Transaction, code string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tDESCRIPTION\tAMOUNT\tBALANCE")
	for _, tx := range txs {
		amount := currency.Format(tx.Amount, code)
		if tx.Type == domain.EntryTypeDebit {
			amount = "-" + amount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format("2006-01-02 15:04"), tx.Type, tx.Description, amount, currency.Format(tx.Balance, code))
	}
	w.Flush()
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show storage usage" }
func (*statsCmd) Usage() string {
	return `bankctl stats

  Shows how much space the current user and the directory take in the store,
  and checks the signed-in user's running balances.
`
}
func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bank, closeFn, err := openBank(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	s, err := bank.Stats(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printStats(os.Stdout, s)

	u, err := bank.CurrentUser(ctx)
	switch {
	case errors.Is(err, domain.ErrNoCurrentUser):
		fmt.Println("ledger:       no user signed in")
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	default:
		if err := ledger.CheckConsistency(u); err != nil {
			fmt.Println("ledger:      ", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("ledger:       consistent (%d transactions)\n", len(u.Transactions))
	}
	return subcommands.ExitSuccess
}

func printStats(out io.Writer, s repository.Stats) {
	fmt.Fprintf(out, "current user: %s KB\n", repository.KB(s.CurrentUserBytes))
	fmt.Fprintf(out, "directory:    %s KB (%d users)\n", repository.KB(s.UsersBytes), s.UserCount)
	fmt.Fprintf(out, "total:        %s KB\n", repository.KB(s.TotalBytes()))
}
