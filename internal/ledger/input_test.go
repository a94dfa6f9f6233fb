package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "integer", raw: "100", want: "100"},
		{name: "decimal with spaces", raw: "  12.34 ", want: "12.34"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "trailing garbage", raw: "12abc", wantErr: true},
		{name: "nan", raw: "NaN", wantErr: true},
		{name: "infinity", raw: "Infinity", wantErr: true},
		{name: "largest accepted", raw: "999999999999999.99", want: "999999999999999.99"},
		{name: "huge exponent", raw: "1e20000000", wantErr: true},
		{name: "sixteen integer digits", raw: "1000000000000000", wantErr: true},
		{name: "tiny exponent", raw: "1e-20000000", wantErr: true},
		{name: "too many decimal places", raw: "0.000000000000000000001", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount("amount", tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "amount", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tc.want)), "got %s", got)
		})
	}
}

func TestParseYears(t *testing.T) {
	n, err := ParseYears("tenure", " 5 ")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	for _, raw := range []string{"", "0", "-1", "2.5", "two"} {
		_, err := ParseYears("tenure", raw)
		require.ErrorIs(t, err, domain.ErrValidation, "input %q", raw)
	}
}

func TestParseRate(t *testing.T) {
	r, err := ParseRate("interestRate", "")
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	r, err = ParseRate("interestRate", "6.75")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("6.75")))

	_, err = ParseRate("interestRate", "-1")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseRate("interestRate", "high")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseRate("interestRate", "1e20000000")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseRate("interestRate", "100.01")
	require.ErrorIs(t, err, domain.ErrValidation)
}
