package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion"}

// ConvertAmountToWords spells a monetary amount in English short-scale words
// for the sworn-declaration documents: "One Thousand Five Hundred and
// 50/100". The fractional part is rendered as NN/100 and omitted entirely
// when zero; negative amounts carry a "Minus " prefix; a zero integer part
// reads "Zero".
func ConvertAmountToWords(amount float64) string {
	d := decimal.NewFromFloat(amount)

	prefix := ""
	if d.IsNegative() {
		prefix = "Minus "
		d = d.Neg()
	}

	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents >= 100 {
		// Rounding the fraction carried into the next whole unit.
		whole = whole.Add(decimal.NewFromInt(1))
		cents = 0
	}

	words := integerToWords(whole)
	if cents > 0 {
		words += " and " + twoDigits(cents) + "/100"
	}
	return prefix + words
}

func twoDigits(n int64) string {
	s := decimal.NewFromInt(n).String()
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// integerToWords composes the words for a non-negative whole number,
// grouping by thousands up to the trillions.
func integerToWords(whole decimal.Decimal) string {
	if whole.IsZero() {
		return "Zero"
	}

	thousand := decimal.NewFromInt(1000)
	groups := []int64{}
	for !whole.IsZero() {
		groups = append(groups, whole.Mod(thousand).IntPart())
		whole = whole.Div(thousand).Truncate(0)
	}

	parts := []string{}
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		segment := hundredsToWords(int(groups[i]))
		if i > 0 && i < len(scaleWords) {
			segment += " " + scaleWords[i]
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, " ")
}

func hundredsToWords(n int) string {
	parts := []string{}
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		if n%10 != 0 {
			parts = append(parts, tensWords[n/10]+" "+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
