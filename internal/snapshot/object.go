package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

// object is a JSON object whose members are checked one at a time, so that a
// failure names the exact field path and no partially trusted value escapes.
type object struct {
	path    string
	members map[string]json.RawMessage
}

func malformed(path, reason string) error {
	return domain.NewMalformedSnapshotError(path, reason)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseObject(path string, raw json.RawMessage) (object, error) {
	if firstByte(raw) != '{' {
		return object{}, malformed(path, "expected an object")
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return object{}, malformed(path, err.Error())
	}
	return object{path: path, members: m}, nil
}

func parseArray(path string, raw json.RawMessage) ([]json.RawMessage, error) {
	if firstByte(raw) != '[' {
		return nil, malformed(path, "expected an array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(path, err.Error())
	}
	return items, nil
}

func (o object) get(key string) (json.RawMessage, bool) {
	raw, ok := o.members[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// str requires a JSON string. Empty strings are accepted.
func (o object) str(key string) (string, error) {
	path := join(o.path, key)
	raw, ok := o.get(key)
	if !ok {
		return "", malformed(path, "required")
	}
	if firstByte(raw) != '"' {
		return "", malformed(path, "expected a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(path, err.Error())
	}
	return s, nil
}

// num requires a JSON number. Quoted numbers are rejected.
func (o object) num(key string) (decimal.Decimal, error) {
	path := join(o.path, key)
	raw, ok := o.get(key)
	if !ok {
		return decimal.Zero, malformed(path, "required")
	}
	return parseNumber(path, raw)
}

func (o object) optNum(key string) (decimal.NullDecimal, error) {
	raw, ok := o.get(key)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseNumber(join(o.path, key), raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func parseNumber(path string, raw json.RawMessage) (decimal.Decimal, error) {
	c := firstByte(raw)
	if c != '-' && (c < '0' || c > '9') {
		return decimal.Zero, malformed(path, "expected a number")
	}
	d, err := decimal.NewFromString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return decimal.Zero, malformed(path, "expected a number")
	}
	if int64(d.NumDigits())+int64(d.Exponent()) > maxIntegerDigits || -int64(d.Exponent()) > maxScale {
		return decimal.Zero, malformed(path, "number out of range")
	}
	return d, nil
}

// Stored maturity amounts keep full compounding precision, so the scale
// bound is loose. Both bounds reject exponent forms like 1e20000000.
const (
	maxIntegerDigits = 64
	maxScale         = 512
)

func (o object) whole(key string) (int, error) {
	path := join(o.path, key)
	d, err := o.num(key)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, malformed(path, "expected a whole number")
	}
	n, err := strconv.Atoi(d.String())
	if err != nil {
		return 0, malformed(path, "out of range")
	}
	return n, nil
}

func (o object) timestamp(key string) (time.Time, error) {
	s, err := o.str(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, malformed(join(o.path, key), "expected an RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

func (o object) array(key string) ([]json.RawMessage, error) {
	path := join(o.path, key)
	raw, ok := o.get(key)
	if !ok {
		return nil, malformed(path, "required")
	}
	return parseArray(path, raw)
}

func (o object) child(key string) (object, error) {
	path := join(o.path, key)
	raw, ok := o.get(key)
	if !ok {
		return object{}, malformed(path, "required")
	}
	return parseObject(path, raw)
}
