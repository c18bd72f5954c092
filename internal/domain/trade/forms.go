package trade

import (
	"strings"

	"agrobooks/internal/domain/money"
	"agrobooks/internal/platform/timeutil"
)

// Form types mirror what the bill screens post. Every amount is lenient:
// junk and empty values count as zero.

type ItemForm struct {
	Product  string        `json:"product" validate:"required"`
	Quantity money.Lenient `json:"quantity"`
	Rate     money.Lenient `json:"rate"`
}

type BillForm struct {
	Items               []ItemForm       `json:"items" validate:"dive"`
	Freight             money.Adjustment `json:"freight"`
	CashDiscountPercent money.Lenient    `json:"cashDiscountPercent"`
	Settled             money.Lenient    `json:"settled"`
}

// Input normalizes the form. Freight without a direction is deducted.
func (f BillForm) Input() BillInput {
	items := make([]LineItem, 0, len(f.Items))
	for _, item := range f.Items {
		items = append(items, LineItem{
			Product:  strings.TrimSpace(item.Product),
			Quantity: item.Quantity.Decimal(),
			Rate:     item.Rate.Decimal(),
		})
	}
	return BillInput{
		Items:           items,
		Freight:         f.Freight.Signed(money.Deduct),
		DiscountPercent: f.CashDiscountPercent.Decimal(),
		Settled:         f.Settled.Decimal(),
	}
}

type SaleForm struct {
	BillForm
	BillNo       string        `json:"billNo"`
	Date         string        `json:"date" validate:"required"`
	CustomerName string        `json:"customerName" validate:"required"`
	Mobile       string        `json:"mobile" validate:"omitempty,numeric,len=10"`
	GSTIN        string        `json:"gstin" validate:"omitempty,len=15,alphanum"`
	Address      string        `json:"address"`
	VehicleNo    string        `json:"vehicleNo"`
	PaymentMode  string        `json:"paymentMode"`
	Remarks      string        `json:"remarks"`
	DeliveryNote money.Lenient `json:"deliveryNote"`
}

func (f SaleForm) Header() Sale {
	return Sale{
		BillNo:       strings.TrimSpace(f.BillNo),
		Date:         timeutil.ParseDay(f.Date),
		CustomerName: strings.TrimSpace(f.CustomerName),
		Mobile:       strings.TrimSpace(f.Mobile),
		GSTIN:        strings.ToUpper(strings.TrimSpace(f.GSTIN)),
		Address:      strings.TrimSpace(f.Address),
		VehicleNo:    strings.TrimSpace(f.VehicleNo),
		PaymentMode:  f.PaymentMode,
		Remarks:      f.Remarks,
		DeliveryNote: deliveryBags(f.DeliveryNote),
	}
}

// deliveryBags keeps only a positive whole bag count.
func deliveryBags(v money.Lenient) int64 {
	bags := v.Decimal().Floor()
	if bags.Sign() <= 0 {
		return 0
	}
	return bags.IntPart()
}

type PurchaseForm struct {
	BillNo              string           `json:"billNo"`
	Date                string           `json:"date" validate:"required"`
	SupplierName        string           `json:"supplierName" validate:"required"`
	Mobile              string           `json:"mobile" validate:"omitempty,numeric,len=10"`
	Product             string           `json:"product" validate:"required"`
	Quantity            money.Lenient    `json:"quantity"`
	Rate                money.Lenient    `json:"rate"`
	TravelingCost       money.Adjustment `json:"travelingCost"`
	CashDiscountPercent money.Lenient    `json:"cashDiscountPercent"`
	PaidAmount          money.Lenient    `json:"paidAmount"`
	Remarks             string           `json:"remarks"`
}

func (f PurchaseForm) Header() Purchase {
	return Purchase{
		BillNo:       strings.TrimSpace(f.BillNo),
		Date:         timeutil.ParseDay(f.Date),
		SupplierName: strings.TrimSpace(f.SupplierName),
		Mobile:       strings.TrimSpace(f.Mobile),
		Remarks:      f.Remarks,
	}
}

// Input treats the purchase as a one-line bill. Traveling cost without a
// direction is deducted.
func (f PurchaseForm) Input() BillInput {
	return BillForm{
		Items:               []ItemForm{{Product: f.Product, Quantity: f.Quantity, Rate: f.Rate}},
		Freight:             f.TravelingCost,
		CashDiscountPercent: f.CashDiscountPercent,
		Settled:             f.PaidAmount,
	}.Input()
}
