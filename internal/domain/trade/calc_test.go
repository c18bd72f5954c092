package trade

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	in := BillInput{
		Items:           []LineItem{{Product: "Corn Grit", Quantity: dec("100"), Rate: dec("50")}},
		Freight:         dec("-200"),
		DiscountPercent: dec("2"),
		Settled:         dec("4000"),
	}
	totals := ComputeTotals(in)
	if !totals.SubTotal.Equal(dec("5000")) {
		t.Fatalf("expected subtotal 5000, got %s", totals.SubTotal)
	}
	if !totals.DiscountAmount.Equal(dec("100")) {
		t.Fatalf("expected discount 100, got %s", totals.DiscountAmount)
	}
	if !totals.Total.Equal(dec("4700")) {
		t.Fatalf("expected total 4700, got %s", totals.Total)
	}
	if !totals.Due.Equal(dec("700")) {
		t.Fatalf("expected due 700, got %s", totals.Due)
	}
}

func TestComputeTotalsIgnoresItemOrder(t *testing.T) {
	items := []LineItem{
		{Product: "Corn Grit", Quantity: dec("12.5"), Rate: dec("40")},
		{Product: "Rice Grit", Quantity: dec("3"), Rate: dec("19.99")},
		{Product: "Cattle Feed", Quantity: dec("7"), Rate: dec("33.3")},
	}
	reversed := []LineItem{items[2], items[1], items[0]}
	a := ComputeTotals(BillInput{Items: items, DiscountPercent: dec("1.5"), Freight: dec("75")})
	b := ComputeTotals(BillInput{Items: reversed, DiscountPercent: dec("1.5"), Freight: dec("75")})
	if !a.Total.Equal(b.Total) || !a.SubTotal.Equal(b.SubTotal) {
		t.Fatalf("expected identical totals, got %s and %s", a.Total, b.Total)
	}
}

func TestComputeTotalsKeepsOverpayment(t *testing.T) {
	totals := ComputeTotals(BillInput{
		Items:   []LineItem{{Quantity: dec("10"), Rate: dec("10")}},
		Settled: dec("150"),
	})
	if !totals.Due.Equal(dec("-50")) {
		t.Fatalf("expected due -50, got %s", totals.Due)
	}
}

func TestBillFormCoercesJunk(t *testing.T) {
	raw := `{
		"items": [
			{"product": "Corn Grit", "quantity": "100", "rate": 50},
			{"product": "Rice Grit", "quantity": "abc", "rate": "30"}
		],
		"freight": {"amount": "200"},
		"cashDiscountPercent": "",
		"settled": null
	}`
	var form BillForm
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	totals := ComputeTotals(form.Input())
	if !totals.SubTotal.Equal(dec("5000")) {
		t.Fatalf("expected subtotal 5000, got %s", totals.SubTotal)
	}
	if !totals.FreightEffect.Equal(dec("-200")) {
		t.Fatalf("expected freight to default to a deduction, got %s", totals.FreightEffect)
	}
	if !totals.Due.Equal(dec("4800")) {
		t.Fatalf("expected due 4800, got %s", totals.Due)
	}
}

func TestNewSaleStoresComputedFields(t *testing.T) {
	sale := NewSale(Sale{CustomerName: "Ravi Traders"}, BillInput{
		Items:           []LineItem{{Product: "Corn Grit", Quantity: dec("100"), Rate: dec("50")}},
		Freight:         dec("-200"),
		DiscountPercent: dec("2"),
		Settled:         dec("4000"),
	})
	if sale.CustomerName != "Ravi Traders" {
		t.Fatalf("expected header to be kept, got %q", sale.CustomerName)
	}
	if len(sale.Goods) != 1 || sale.Goods[0].HSN != "11031300" {
		t.Fatalf("expected corn grit HSN on goods, got %+v", sale.Goods)
	}
	if !sale.TotalAmount.Equal(dec("4700")) || !sale.Due().Equal(dec("700")) {
		t.Fatalf("expected total 4700 and due 700, got %s and %s", sale.TotalAmount, sale.Due())
	}
	if !ComputeTotals(sale.Bill()).Total.Equal(sale.TotalAmount) {
		t.Fatalf("expected stored bill to reprice to the stored total")
	}
}

func TestNewPurchaseUsesTravelingCost(t *testing.T) {
	var form PurchaseForm
	raw := `{"supplierName": "Mandi", "product": "Maize", "quantity": "20", "rate": "1500",
		"travelingCost": {"amount": 500, "direction": "+"}, "paidAmount": "10000"}`
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	purchase := NewPurchase(form.Header(), form.Input())
	if purchase.Product != "Maize" {
		t.Fatalf("expected product Maize, got %q", purchase.Product)
	}
	if !purchase.TotalAmount.Equal(dec("30500")) {
		t.Fatalf("expected total 30500, got %s", purchase.TotalAmount)
	}
	if !purchase.Due().Equal(dec("20500")) {
		t.Fatalf("expected balance 20500, got %s", purchase.Due())
	}
}

func TestDueResolution(t *testing.T) {
	zero := decimal.Zero
	stored := Sale{TotalAmount: dec("1000"), AmountReceived: dec("200"), PaymentDue: &zero}
	if !stored.Due().IsZero() {
		t.Fatalf("expected stored zero due to win, got %s", stored.Due())
	}
	derived := Sale{TotalAmount: dec("1000"), AmountReceived: dec("200")}
	if !derived.Due().Equal(dec("800")) {
		t.Fatalf("expected derived due 800, got %s", derived.Due())
	}
	balance := dec("300")
	purchase := Purchase{TotalAmount: dec("1000"), PaidAmount: dec("100"), BalanceAmount: &balance}
	if !purchase.Due().Equal(balance) {
		t.Fatalf("expected stored balance 300, got %s", purchase.Due())
	}
}
