package trade

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hsnCodes = map[string]string{
	"corn grit":   "11031300",
	"corn greet":  "11031300",
	"rice grit":   "10064000",
	"rice greet":  "10064000",
	"cattle feed": "23099010",
}

// HSNFor maps a product name to its HSN code. Unknown products are flour.
func HSNFor(product string) string {
	if code, ok := hsnCodes[strings.ToLower(strings.TrimSpace(product))]; ok {
		return code
	}
	return DefaultHSN
}

// HSNSummary totals taxable value per HSN code in first-seen order.
func HSNSummary(goods []Goods) []HSNLine {
	lines := []HSNLine{}
	index := map[string]int{}
	for _, g := range goods {
		code := g.HSN
		if code == "" {
			code = HSNFor(g.Product)
		}
		i, ok := index[code]
		if !ok {
			index[code] = len(lines)
			lines = append(lines, HSNLine{HSN: code, TaxableValue: decimal.Zero})
			i = len(lines) - 1
		}
		lines[i].TaxableValue = lines[i].TaxableValue.Add(g.TaxableAmount)
	}
	return lines
}

// BagCount is the number of bags needed for the total quantity, rounded up.
func BagCount(goods []Goods) int64 {
	total := decimal.Zero
	for _, g := range goods {
		total = total.Add(g.Quantity)
	}
	if total.Sign() <= 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(BagWeight)).Ceil().IntPart()
}
