package money

import (
	"testing"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		amount   int64
		currency enums.Currency
		want     string
	}{
		{0, enums.CurrencyINR, "₹0"},
		{999, enums.CurrencyINR, "₹999"},
		{10_000, enums.CurrencyINR, "₹10,000"},
		{5_000_000, enums.CurrencyINR, "₹50,00,000"},
		{123_456_789, enums.CurrencyINR, "₹12,34,56,789"},
		{5_000_000, enums.CurrencyUSD, "$5,000,000"},
		{1_000, enums.CurrencyUSD, "$1,000"},
		{-25_000, enums.CurrencyINR, "-₹25,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.amount, tc.currency), "amount %d %s", tc.amount, tc.currency)
	}
}

func TestCompact(t *testing.T) {
	cases := []struct {
		amount   int64
		currency enums.Currency
		want     string
	}{
		{500, enums.CurrencyINR, "₹500"},
		{10_000, enums.CurrencyINR, "₹10K"},
		{250_000, enums.CurrencyINR, "₹2.5L"},
		{5_000_000, enums.CurrencyINR, "₹50L"},
		{12_500_000, enums.CurrencyINR, "₹1.25Cr"},
		{4_990_000, enums.CurrencyUSD, "$4.99M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compact(tc.amount, tc.currency), "amount %d %s", tc.amount, tc.currency)
	}
}
