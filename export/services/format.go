package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatInteger renders a value as a whole-number string with thousands
// separators, no decimals: 1234567.8 -> "1,234,568".
func FormatInteger(d decimal.Decimal) string {
	return groupThousands(d.Round(0).String())
}

// FormatMoney renders a fee amount with thousands separators, keeping two
// decimals only when the value is not whole: 1500 -> "1,500",
// 1500.5 -> "1,500.50".
func FormatMoney(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return groupThousands(d.Truncate(0).String())
	}
	fixed := d.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	return groupThousands(parts[0]) + "." + parts[1]
}

func groupThousands(digits string) string {
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var grouped strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteString(",")
		}
		grouped.WriteRune(ch)
	}
	if negative {
		return "-" + grouped.String()
	}
	return grouped.String()
}

// NormalizeAddress rewrites slash-separated address segments into a single
// comma-separated line, collapsing duplicate commas and whitespace and
// trimming any trailing comma.
func NormalizeAddress(address string) string {
	segments := strings.FieldsFunc(strings.ReplaceAll(address, "/", ","), func(r rune) bool {
		return r == ','
	})
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Join(strings.Fields(segment), " ")
		if segment != "" {
			cleaned = append(cleaned, segment)
		}
	}
	return strings.Join(cleaned, ", ")
}
