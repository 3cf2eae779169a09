package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertAmountToWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero"},
		{1, "One"},
		{15, "Fifteen"},
		{40, "Forty"},
		{101, "One Hundred One"},
		{1500.5, "One Thousand Five Hundred and 50/100"},
		{0.05, "Zero and 05/100"},
		{-3, "Minus Three"},
		{1000000, "One Million"},
		{2500000000, "Two Billion Five Hundred Million"},
		{1000000000000, "One Trillion"},
		{123456.78, "One Hundred Twenty Three Thousand Four Hundred Fifty Six and 78/100"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ConvertAmountToWords(tc.amount), "amount %v", tc.amount)
	}
}

func TestConvertAmountToWordsCentsCarry(t *testing.T) {
	// 1.999 rounds its cents to 100, which carries into the whole part.
	assert.Equal(t, "Two", ConvertAmountToWords(1.999))
}
