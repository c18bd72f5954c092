package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	Product  string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

// BillInput is a normalized bill. Freight is already signed; Settled is the
// amount received on a sale or paid on a purchase.
type BillInput struct {
	Items           []LineItem
	Freight         decimal.Decimal
	DiscountPercent decimal.Decimal
	Settled         decimal.Decimal
}

type Totals struct {
	SubTotal       decimal.Decimal `json:"subTotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FreightEffect  decimal.Decimal `json:"freightEffect"`
	Total          decimal.Decimal `json:"total"`
	Due            decimal.Decimal `json:"due"`
}

type Goods struct {
	Product       string          `json:"product"`
	HSN           string          `json:"hsn"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
}

type Sale struct {
	ID                  string           `json:"id"`
	BillNo              string           `json:"billNo"`
	Date                time.Time        `json:"date"`
	CustomerName        string           `json:"customerName"`
	Mobile              string           `json:"mobile,omitempty"`
	GSTIN               string           `json:"gstin,omitempty"`
	Address             string           `json:"address,omitempty"`
	VehicleNo           string           `json:"vehicleNo,omitempty"`
	PaymentMode         string           `json:"paymentMode,omitempty"`
	Remarks             string           `json:"remarks,omitempty"`
	Goods               []Goods          `json:"goods"`
	Freight             decimal.Decimal  `json:"freight"`
	CashDiscountPercent decimal.Decimal  `json:"cashDiscountPercent"`
	TaxableValue        decimal.Decimal  `json:"taxableValue"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	AmountReceived      decimal.Decimal  `json:"amountReceived"`
	PaymentDue          *decimal.Decimal `json:"paymentDue"`

	// DeliveryNote is the bag count written on the delivery note; 0 means
	// the invoice derives it from the quantity.
	DeliveryNote int64     `json:"deliveryNote,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Purchase struct {
	ID                  string           `json:"id"`
	BillNo              string           `json:"billNo"`
	Date                time.Time        `json:"date"`
	SupplierName        string           `json:"supplierName"`
	Mobile              string           `json:"mobile,omitempty"`
	Product             string           `json:"product"`
	Quantity            decimal.Decimal  `json:"quantity"`
	Rate                decimal.Decimal  `json:"rate"`
	TravelingCost       decimal.Decimal  `json:"travelingCost"`
	CashDiscountPercent decimal.Decimal  `json:"cashDiscountPercent"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	PaidAmount          decimal.Decimal  `json:"paidAmount"`
	BalanceAmount       *decimal.Decimal `json:"balanceAmount"`
	Remarks             string           `json:"remarks,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// Due is the stored PaymentDue when present, even if zero, else the derived
// TotalAmount - AmountReceived.
func (s Sale) Due() decimal.Decimal {
	if s.PaymentDue != nil {
		return *s.PaymentDue
	}
	return s.TotalAmount.Sub(s.AmountReceived)
}

// Due is the stored BalanceAmount when present, else TotalAmount - PaidAmount.
func (p Purchase) Due() decimal.Decimal {
	if p.BalanceAmount != nil {
		return *p.BalanceAmount
	}
	return p.TotalAmount.Sub(p.PaidAmount)
}

type DueBill struct {
	ID     string          `json:"id"`
	BillNo string          `json:"billNo"`
	Party  string          `json:"party"`
	Mobile string          `json:"mobile,omitempty"`
	Date   time.Time       `json:"date"`
	Due    decimal.Decimal `json:"due"`
}

type OverdueGroup struct {
	Party    string          `json:"party"`
	Mobile   string          `json:"mobile,omitempty"`
	TotalDue decimal.Decimal `json:"totalDue"`
	Bills    []DueBill       `json:"bills"`
}

type OverdueReport struct {
	ThresholdDays int             `json:"thresholdDays"`
	Sales         []OverdueGroup  `json:"sales"`
	Purchases     []OverdueGroup  `json:"purchases"`
	Receivable    decimal.Decimal `json:"receivable"`
	Payable       decimal.Decimal `json:"payable"`
}

type HSNLine struct {
	HSN          string          `json:"hsn"`
	TaxableValue decimal.Decimal `json:"taxableValue"`
}

type Invoice struct {
	Sale          Sale            `json:"sale"`
	Totals        Totals          `json:"totals"`
	HSNSummary    []HSNLine       `json:"hsnSummary"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	Bags          int64           `json:"bags"`
	AmountInWords string          `json:"amountInWords"`
}

type StockLevel struct {
	Product   string          `json:"product"`
	Purchased decimal.Decimal `json:"purchased"`
	Sold      decimal.Decimal `json:"sold"`
	Available decimal.Decimal `json:"available"`
	Status    string          `json:"status"`
}

type StockReport struct {
	Items      []StockLevel `json:"items"`
	OutOfStock int          `json:"outOfStock"`
}

type SupplierBalance struct {
	Name         string          `json:"name"`
	Mobile       string          `json:"mobile,omitempty"`
	Bills        int             `json:"bills"`
	TotalOwed    decimal.Decimal `json:"totalOwed"`
	LastBillNo   string          `json:"lastBillNo,omitempty"`
	LastBillDate time.Time       `json:"lastBillDate"`
}
