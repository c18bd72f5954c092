package trade

import (
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
)

// BuildInvoice assembles the printable view of a sale. The stored totals are
// authoritative; Totals is recomputed only for the breakdown lines. A delivery
// note bag count wins over the one derived from quantity.
func BuildInvoice(sale Sale) Invoice {
	quantity := decimal.Zero
	for _, g := range sale.Goods {
		quantity = quantity.Add(g.Quantity)
	}
	if sale.Goods == nil {
		sale.Goods = []Goods{}
	}
	bags := sale.DeliveryNote
	if bags <= 0 {
		bags = BagCount(sale.Goods)
	}
	return Invoice{
		Sale:          sale,
		Totals:        ComputeTotals(sale.Bill()),
		HSNSummary:    HSNSummary(sale.Goods),
		TotalQuantity: quantity,
		Bags:          bags,
		AmountInWords: money.InWords(sale.TotalAmount),
	}
}
