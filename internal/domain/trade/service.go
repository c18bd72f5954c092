package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrobooks/internal/platform/timeutil"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: timeutil.Now}
}

// Quote prices a bill without storing anything.
func (s *Service) Quote(in BillInput) Totals {
	return ComputeTotals(in)
}

func (s *Service) CreateSale(ctx context.Context, header Sale, in BillInput) (Sale, error) {
	if err := checkBill(header.Date, in); err != nil {
		return Sale{}, err
	}
	sale := NewSale(header, in)
	sale.ID = uuid.NewString()
	sale.CreatedAt = s.now()
	if err := s.store.CreateSale(ctx, sale); err != nil {
		return Sale{}, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

func (s *Service) CreatePurchase(ctx context.Context, header Purchase, in BillInput) (Purchase, error) {
	if err := checkBill(header.Date, in); err != nil {
		return Purchase{}, err
	}
	purchase := NewPurchase(header, in)
	purchase.ID = uuid.NewString()
	purchase.CreatedAt = s.now()
	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		return Purchase{}, fmt.Errorf("create purchase: %w", err)
	}
	return purchase, nil
}

func checkBill(date time.Time, in BillInput) error {
	if date.IsZero() {
		return ErrMissingDate
	}
	if len(in.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range in.Items {
		if item.Quantity.IsNegative() || item.Rate.IsNegative() {
			return ErrNegativeAmount
		}
	}
	if in.DiscountPercent.IsNegative() || in.Settled.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (s *Service) Sales(ctx context.Context) ([]Sale, error) {
	return s.store.ListSales(ctx)
}

func (s *Service) Purchases(ctx context.Context) ([]Purchase, error) {
	return s.store.ListPurchases(ctx)
}

func (s *Service) Invoice(ctx context.Context, saleID string) (Invoice, error) {
	sale, err := s.store.GetSale(ctx, saleID)
	if err != nil {
		return Invoice{}, err
	}
	return BuildInvoice(sale), nil
}

// Overdue groups unpaid sales and purchases older than thresholdDays.
func (s *Service) Overdue(ctx context.Context, thresholdDays int) (OverdueReport, error) {
	if thresholdDays < 0 {
		thresholdDays = DefaultOverdueDays
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return OverdueReport{}, fmt.Errorf("list sales: %w", err)
	}
	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		return OverdueReport{}, fmt.Errorf("list purchases: %w", err)
	}
	today := s.now()
	report := OverdueReport{
		ThresholdDays: thresholdDays,
		Sales:         GroupOverdue(SaleDueBills(sales), thresholdDays, today),
		Purchases:     GroupOverdue(PurchaseDueBills(purchases), thresholdDays, today),
	}
	report.Receivable = TotalDue(report.Sales)
	report.Payable = TotalDue(report.Purchases)
	return report, nil
}

// Stock derives live stock from every purchase and sale on record.
func (s *Service) Stock(ctx context.Context) (StockReport, error) {
	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		return StockReport{}, fmt.Errorf("list purchases: %w", err)
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return StockReport{}, fmt.Errorf("list sales: %w", err)
	}
	return StockLevels(purchases, sales), nil
}

func (s *Service) Suppliers(ctx context.Context) ([]SupplierBalance, error) {
	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return SupplierBalances(purchases), nil
}
