package tradehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/trade"
	"agrobooks/internal/platform/timeutil"
)

type memStore struct {
	sales     []trade.Sale
	purchases []trade.Purchase
}

func (m *memStore) CreateSale(_ context.Context, sale trade.Sale) error {
	m.sales = append(m.sales, sale)
	return nil
}

func (m *memStore) ListSales(context.Context) ([]trade.Sale, error) {
	return m.sales, nil
}

func (m *memStore) GetSale(_ context.Context, id string) (trade.Sale, error) {
	for _, s := range m.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return trade.Sale{}, trade.ErrNotFound
}

func (m *memStore) CreatePurchase(_ context.Context, p trade.Purchase) error {
	m.purchases = append(m.purchases, p)
	return nil
}

func (m *memStore) ListPurchases(context.Context) ([]trade.Purchase, error) {
	return m.purchases, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details struct {
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func newRouter(store *memStore) http.Handler {
	r := chi.NewRouter()
	NewHandler(trade.NewService(store), nil, 10).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestQuoteAcceptsLenientNumbers(t *testing.T) {
	h := newRouter(&memStore{})
	rec, env := do(t, h, http.MethodPost, "/bills/quote", map[string]any{
		"items": []map[string]any{
			{"product": "Wheat", "quantity": "10", "rate": 250},
			{"product": "Bran", "quantity": "abc", "rate": 100},
		},
		"freight":             map[string]any{"amount": "100", "direction": "+"},
		"cashDiscountPercent": "2",
		"settled":             "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var totals map[string]float64
	if err := json.Unmarshal(env.Data, &totals); err != nil {
		t.Fatalf("decode totals: %v", err)
	}
	// 2500 - 2% (50) + 100 freight = 2550
	if totals["total"] != 2550 || totals["due"] != 2550 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestCreateSaleAndInvoice(t *testing.T) {
	store := &memStore{}
	h := newRouter(store)
	rec, env := do(t, h, http.MethodPost, "/sales/", map[string]any{
		"billNo":       "S-1",
		"date":         "2026-03-01",
		"customerName": "Ravi Traders",
		"items":        []map[string]any{{"product": "Atta", "quantity": 100, "rate": 30}},
		"settled":      1000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var sale trade.Sale
	if err := json.Unmarshal(env.Data, &sale); err != nil {
		t.Fatalf("decode sale: %v", err)
	}
	if sale.ID == "" || !sale.TotalAmount.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected sale %+v", sale)
	}

	rec, env = do(t, h, http.MethodGet, "/sales/"+sale.ID+"/invoice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected invoice, got %d", rec.Code)
	}
	var invoice map[string]any
	if err := json.Unmarshal(env.Data, &invoice); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if invoice["amountInWords"] != "Three Thousand Only" {
		t.Fatalf("unexpected amount in words %v", invoice["amountInWords"])
	}

	rec, _ = do(t, h, http.MethodGet, "/sales/missing/invoice", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown sale, got %d", rec.Code)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	h := newRouter(&memStore{})
	rec, env := do(t, h, http.MethodPost, "/sales/", map[string]any{
		"date":   "01/03/2026",
		"mobile": "12345",
		"items":  []map[string]any{},
	})
	if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation error, got %d: %s", rec.Code, rec.Body.String())
	}
	fields := map[string]bool{}
	for _, f := range env.Error.Details.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"customerName", "date", "items", "mobile"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %+v", want, env.Error.Details.Fields)
		}
	}
}

func TestListSalesPaginates(t *testing.T) {
	store := &memStore{}
	for i := 0; i < 3; i++ {
		store.sales = append(store.sales, trade.Sale{ID: string(rune('a' + i)), CustomerName: "C"})
	}
	h := newRouter(store)
	rec, env := do(t, h, http.MethodGet, "/sales/?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Total-Count") != "3" || env.Meta == nil || env.Meta.Total != 3 {
		t.Fatalf("expected total 3, got header %q meta %+v", rec.Header().Get("X-Total-Count"), env.Meta)
	}
	var sales []trade.Sale
	if err := json.Unmarshal(env.Data, &sales); err != nil {
		t.Fatalf("decode sales: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected a page of 2, got %d", len(sales))
	}
}

func TestOverdueUsesDaysQuery(t *testing.T) {
	old := timeutil.Day(timeutil.Now()).AddDate(0, 0, -5)
	store := &memStore{purchases: []trade.Purchase{{
		ID: "p1", SupplierName: "Kisan Mills", Date: old,
		TotalAmount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(100),
	}}}
	h := newRouter(store)

	_, env := do(t, h, http.MethodGet, "/overdue", nil)
	var report trade.OverdueReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Purchases) != 0 {
		t.Fatalf("expected nothing overdue at the default 10 days, got %+v", report.Purchases)
	}

	_, env = do(t, h, http.MethodGet, "/overdue?days=3", nil)
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Purchases) != 1 || !report.Payable.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected one overdue supplier owing 400, got %+v", report)
	}

	rec, _ := do(t, h, http.MethodGet, "/overdue?days=soon", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for junk days, got %d", rec.Code)
	}
}

func TestCreatePurchaseRejectsNegativeRate(t *testing.T) {
	h := newRouter(&memStore{})
	rec, _ := do(t, h, http.MethodPost, "/purchases/", map[string]any{
		"date":         time.Now().Format("2006-01-02"),
		"supplierName": "Kisan Mills",
		"product":      "Wheat",
		"quantity":     10,
		"rate":         -5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "amounts") {
		t.Fatalf("expected amounts issue, got %s", rec.Body.String())
	}
}

func TestQuoteZeroesOutOfRangeAmounts(t *testing.T) {
	h := newRouter(&memStore{})
	rec, env := do(t, h, http.MethodPost, "/bills/quote", map[string]any{
		"items":               []map[string]any{{"product": "Atta", "quantity": "1e900000000", "rate": "1e900000000"}},
		"cashDiscountPercent": "1e-900000000",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() > 1024 {
		t.Fatalf("expected a small response, got %d bytes", rec.Body.Len())
	}
	var totals map[string]float64
	if err := json.Unmarshal(env.Data, &totals); err != nil {
		t.Fatalf("decode totals: %v", err)
	}
	if totals["total"] != 0 || totals["subTotal"] != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestInvoiceUsesDeliveryNote(t *testing.T) {
	store := &memStore{}
	h := newRouter(store)
	rec, env := do(t, h, http.MethodPost, "/sales/", map[string]any{
		"date":         "2026-03-01",
		"customerName": "Ravi Traders",
		"items":        []map[string]any{{"product": "Atta", "quantity": 100, "rate": 30}},
		"deliveryNote": "7",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var sale trade.Sale
	if err := json.Unmarshal(env.Data, &sale); err != nil {
		t.Fatalf("decode sale: %v", err)
	}
	_, env = do(t, h, http.MethodGet, "/sales/"+sale.ID+"/invoice", nil)
	var invoice struct {
		Bags int64 `json:"bags"`
	}
	if err := json.Unmarshal(env.Data, &invoice); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if invoice.Bags != 7 {
		t.Fatalf("expected delivery note bags 7, got %d", invoice.Bags)
	}
}

func TestStockAndSuppliers(t *testing.T) {
	store := &memStore{
		purchases: []trade.Purchase{
			{SupplierName: "Kisan Mills", Mobile: "9876543210", Product: "Corn Grit", Quantity: decimal.NewFromInt(1000), TotalAmount: decimal.NewFromInt(20000), PaidAmount: decimal.NewFromInt(5000)},
			{SupplierName: "Shree Feeds", Product: "Cattle Feed", Quantity: decimal.NewFromInt(100), TotalAmount: decimal.NewFromInt(2000), PaidAmount: decimal.NewFromInt(2000)},
		},
		sales: []trade.Sale{
			{Goods: []trade.Goods{{Product: "Cattle Feed", Quantity: decimal.NewFromInt(100)}}},
		},
	}
	h := newRouter(store)

	rec, env := do(t, h, http.MethodGet, "/stocks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stock trade.StockReport
	if err := json.Unmarshal(env.Data, &stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if len(stock.Items) != 2 || stock.OutOfStock != 1 || stock.Items[0].Product != "Cattle Feed" {
		t.Fatalf("unexpected stock %+v", stock)
	}

	rec, env = do(t, h, http.MethodGet, "/suppliers", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "2" {
		t.Fatalf("expected two suppliers, got %d %q", rec.Code, rec.Header().Get("X-Total-Count"))
	}
	var suppliers []trade.SupplierBalance
	if err := json.Unmarshal(env.Data, &suppliers); err != nil {
		t.Fatalf("decode suppliers: %v", err)
	}
	if suppliers[0].Name != "Kisan Mills" || !suppliers[0].TotalOwed.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("unexpected suppliers %+v", suppliers)
	}

	rec, _ = do(t, h, http.MethodGet, "/suppliers?search=shree", nil)
	if rec.Header().Get("X-Total-Count") != "1" {
		t.Fatalf("expected search to keep one supplier, got %q", rec.Header().Get("X-Total-Count"))
	}
}
