// Package money renders listing prices for filter labels.
package money

import (
	"strings"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100_000)
	crore = decimal.NewFromInt(10_000_000)
	grand = decimal.NewFromInt(1_000)
	mega  = decimal.NewFromInt(1_000_000)
)

// Format renders a whole-unit amount with the currency symbol and digit grouping.
// INR uses lakh grouping (50,00,000); other currencies group by thousands.
func Format(amount int64, currency enums.Currency) string {
	digits := decimal.NewFromInt(amount).Abs().StringFixed(0)
	var grouped string
	if currency == enums.CurrencyINR {
		grouped = groupIndian(digits)
	} else {
		grouped = groupThousands(digits)
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + currency.Symbol() + grouped
}

// Compact renders a short label for slider ends, e.g. ₹50L or ₹1.25Cr.
func Compact(amount int64, currency enums.Currency) string {
	v := decimal.NewFromInt(amount)
	var unit decimal.Decimal
	var suffix string
	switch {
	case currency == enums.CurrencyINR && v.Abs().GreaterThanOrEqual(crore):
		unit, suffix = crore, "Cr"
	case currency == enums.CurrencyINR && v.Abs().GreaterThanOrEqual(lakh):
		unit, suffix = lakh, "L"
	case currency != enums.CurrencyINR && v.Abs().GreaterThanOrEqual(mega):
		unit, suffix = mega, "M"
	case v.Abs().GreaterThanOrEqual(grand):
		unit, suffix = grand, "K"
	default:
		return Format(amount, currency)
	}
	scaled := v.Div(unit).Round(2).String()
	sign := ""
	if strings.HasPrefix(scaled, "-") {
		sign, scaled = "-", strings.TrimPrefix(scaled, "-")
	}
	return sign + currency.Symbol() + scaled + suffix
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// groupIndian keeps the last three digits together and pairs the rest.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
