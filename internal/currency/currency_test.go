package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"rounds to minor unit", "1207.949625", "USD", "$1,207.95"},
		{"whole amount", "1000", "USD", "$1,000.00"},
		{"zero", "0", "USD", "$0.00"},
		{"small", "0.5", "USD", "$0.50"},
		{"largest int64 minor units", "92233720368547758.07", "USD", "$92,233,720,368,547,758.07"},
		{"beyond int64 minor units", "100000000000000000", "USD", "USD 100000000000000000.00"},
		{"int64 minimum", "-92233720368547758.08", "USD", "USD -92233720368547758.08"},
		{"negative beyond int64", "-100000000000000000.456", "USD", "USD -100000000000000000.46"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t,
		Format(decimal.NewFromInt(5), DefaultCode),
		Format(decimal.NewFromInt(5), "XXXX"),
	)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("INR"))
	assert.True(t, Valid("USD"))
	assert.False(t, Valid("NOPE"))
}
