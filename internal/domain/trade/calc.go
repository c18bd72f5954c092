package trade

import (
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
)

// ComputeTotals prices a bill:
//
//	subTotal = sum(qty * rate)
//	discount = subTotal * pct / 100
//	total    = subTotal - discount + freight
//	due      = total - settled
//
// Nothing is rounded and a negative due (overpayment) is kept.
func ComputeTotals(in BillInput) Totals {
	subTotal := decimal.Zero
	for _, item := range in.Items {
		subTotal = subTotal.Add(item.Quantity.Mul(item.Rate))
	}
	discount := subTotal.Mul(in.DiscountPercent).Div(money.Hundred)
	total := subTotal.Sub(discount).Add(in.Freight)
	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discount,
		FreightEffect:  in.Freight,
		Total:          total,
		Due:            total.Sub(in.Settled),
	}
}

// NewSale fills the priced fields of a sale from its bill. Descriptive fields
// are taken from header as is.
func NewSale(header Sale, in BillInput) Sale {
	totals := ComputeTotals(in)
	sale := header
	sale.Goods = make([]Goods, 0, len(in.Items))
	for _, item := range in.Items {
		sale.Goods = append(sale.Goods, Goods{
			Product:       item.Product,
			HSN:           HSNFor(item.Product),
			Quantity:      item.Quantity,
			Rate:          item.Rate,
			TaxableAmount: item.Quantity.Mul(item.Rate),
		})
	}
	sale.Freight = in.Freight
	sale.CashDiscountPercent = in.DiscountPercent
	sale.TaxableValue = totals.SubTotal
	sale.TotalAmount = totals.Total
	sale.AmountReceived = in.Settled
	due := totals.Due
	sale.PaymentDue = &due
	return sale
}

// NewPurchase prices a single-product purchase.
func NewPurchase(header Purchase, in BillInput) Purchase {
	totals := ComputeTotals(in)
	purchase := header
	if len(in.Items) > 0 {
		purchase.Product = in.Items[0].Product
		purchase.Quantity = in.Items[0].Quantity
		purchase.Rate = in.Items[0].Rate
	}
	purchase.TravelingCost = in.Freight
	purchase.CashDiscountPercent = in.DiscountPercent
	purchase.TotalAmount = totals.Total
	purchase.PaidAmount = in.Settled
	balance := totals.Due
	purchase.BalanceAmount = &balance
	return purchase
}

// Bill rebuilds the calculator input of a stored sale.
func (s Sale) Bill() BillInput {
	items := make([]LineItem, 0, len(s.Goods))
	for _, g := range s.Goods {
		items = append(items, LineItem{Product: g.Product, Quantity: g.Quantity, Rate: g.Rate})
	}
	return BillInput{
		Items:           items,
		Freight:         s.Freight,
		DiscountPercent: s.CashDiscountPercent,
		Settled:         s.AmountReceived,
	}
}
