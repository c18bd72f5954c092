package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var units = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const wordsLimit = 1_000_000_000

func twoDigits(n int64) string {
	if n < 20 {
		return units[n]
	}
	w := tens[n/10]
	if n%10 != 0 {
		w += " " + units[n%10]
	}
	return w
}

// InWords spells a rupee amount with the Indian grouping (crore, lakh,
// thousand, hundred), e.g. 4700 is "Four Thousand Seven Hundred Only".
// Paise are rounded off. Amounts of a hundred crore or more give "Overflow".
func InWords(amount decimal.Decimal) string {
	n := Round(amount.Abs()).IntPart()
	if n >= wordsLimit {
		return "Overflow"
	}
	if n == 0 {
		return "Zero Only"
	}

	crore := n / 10_000_000
	n %= 10_000_000
	lakh := n / 100_000
	n %= 100_000
	thousand := n / 1000
	n %= 1000
	hundreds := n / 100
	rest := n % 100

	var parts []string
	if crore > 0 {
		parts = append(parts, twoDigits(crore), "Crore")
	}
	if lakh > 0 {
		parts = append(parts, twoDigits(lakh), "Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigits(thousand), "Thousand")
	}
	if hundreds > 0 {
		parts = append(parts, units[hundreds], "Hundred")
	}
	if rest > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigits(rest))
	}
	parts = append(parts, "Only")

	words := strings.Join(parts, " ")
	if amount.Sign() < 0 {
		words = "Minus " + words
	}
	return words
}
