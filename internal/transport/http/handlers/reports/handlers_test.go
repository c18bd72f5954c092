package reportshandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/payroll"
	"agrobooks/internal/domain/reports"
	"agrobooks/internal/domain/trade"
	"agrobooks/internal/platform/jobs"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeTrade struct {
	sales     []trade.Sale
	purchases []trade.Purchase
}

func (f fakeTrade) Sales(context.Context) ([]trade.Sale, error)         { return f.sales, nil }
func (f fakeTrade) Purchases(context.Context) ([]trade.Purchase, error) { return f.purchases, nil }

type fakeExpenses struct{}

func (fakeExpenses) ExpenseOutflow(context.Context) (decimal.Decimal, error) {
	return dec("300"), nil
}

type fakePayroll struct{}

func (fakePayroll) Employees(context.Context) ([]payroll.Employee, error) {
	return []payroll.Employee{{ID: "e1", Salary: dec("1000")}}, nil
}

func (fakePayroll) PendingSalaries(context.Context) ([]decimal.Decimal, error) {
	return []decimal.Decimal{dec("200")}, nil
}

type fakeJobStore struct {
	filter reports.JobRunFilter
	limit  int
}

func (f *fakeJobStore) ListJobRuns(_ context.Context, filter reports.JobRunFilter, limit, _ int) ([]reports.JobRun, error) {
	f.filter, f.limit = filter, limit
	return []reports.JobRun{{ID: "r1", JobType: jobs.JobOverdueScan, Status: jobs.StatusCompleted}}, nil
}

func (f *fakeJobStore) CountJobRuns(context.Context, reports.JobRunFilter) (int, error) {
	return 7, nil
}

type fakeOverdue struct{ err error }

func (f fakeOverdue) Overdue(_ context.Context, days int) (trade.OverdueReport, error) {
	if f.err != nil {
		return trade.OverdueReport{}, f.err
	}
	return trade.OverdueReport{ThresholdDays: days, Receivable: dec("900")}, nil
}

func newRouter(store *fakeJobStore, overdue fakeOverdue) http.Handler {
	src := reports.Sources{
		Trade: fakeTrade{
			sales:     []trade.Sale{{TotalAmount: dec("5000"), AmountReceived: dec("4000")}},
			purchases: []trade.Purchase{{TotalAmount: dec("3000"), PaidAmount: dec("2500")}},
		},
		Expenses: fakeExpenses{},
		Payroll:  fakePayroll{},
	}
	svc := reports.NewService(src, store, nil, 0)
	runner := jobs.New(nil, overdue, nil, jobs.Options{OverdueDays: 12})
	r := chi.NewRouter()
	NewHandler(svc, runner).RegisterRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, method, path string, dst any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	if dst != nil && rec.Code < 300 {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return rec
}

func TestSummary(t *testing.T) {
	h := newRouter(&fakeJobStore{}, fakeOverdue{})
	var summary map[string]float64
	rec := get(t, h, http.MethodGet, "/reports/summary", &summary)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// payable = 500 purchase due + 300 expenses + 200 pending salary
	if summary["receivable"] != 1000 || summary["payable"] != 1000 || summary["net"] != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestProfitLoss(t *testing.T) {
	h := newRouter(&fakeJobStore{}, fakeOverdue{})
	var report map[string]any
	get(t, h, http.MethodGet, "/reports/profit-loss", &report)
	// 5000 - (3000 + 1000 + 300) = 700
	if report["net"] != float64(700) || report["verdict"] != reports.VerdictProfit {
		t.Fatalf("unexpected profit and loss %+v", report)
	}
}

func TestJobRunsFiltersAndPaginates(t *testing.T) {
	store := &fakeJobStore{}
	h := newRouter(store, fakeOverdue{})
	var runs []reports.JobRun
	rec := get(t, h, http.MethodGet, "/reports/jobs?jobType=overdue_scan&status=Completed&startedFrom=2026-01-02&startedTo=2026-01-03&limit=5", &runs)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Total-Count") != "7" || len(runs) != 1 {
		t.Fatalf("expected total 7 and one run, got %q and %d", rec.Header().Get("X-Total-Count"), len(runs))
	}
	if store.filter.Status != jobs.StatusCompleted || store.filter.JobType != jobs.JobOverdueScan || store.limit != 5 {
		t.Fatalf("unexpected filter %+v limit %d", store.filter, store.limit)
	}
	if store.filter.StartedFrom == nil || store.filter.StartedFrom.Day() != 2 || store.filter.StartedTo == nil {
		t.Fatalf("expected date bounds, got %+v", store.filter)
	}

	rec = get(t, h, http.MethodGet, "/reports/jobs?status=exploded", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestOverdueScan(t *testing.T) {
	h := newRouter(&fakeJobStore{}, fakeOverdue{})
	var report trade.OverdueReport
	rec := get(t, h, http.MethodPost, "/jobs/overdue-scan", &report)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if report.ThresholdDays != 12 || !report.Receivable.Equal(dec("900")) {
		t.Fatalf("unexpected report %+v", report)
	}

	failing := newRouter(&fakeJobStore{}, fakeOverdue{err: errors.New("db down")})
	rec = get(t, failing, http.MethodPost, "/jobs/overdue-scan", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the scan fails, got %d", rec.Code)
	}
}
