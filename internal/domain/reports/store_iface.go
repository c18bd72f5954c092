package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/payroll"
	"agrobooks/internal/domain/trade"
)

type StoreAPI interface {
	ListJobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error)
	CountJobRuns(ctx context.Context, filter JobRunFilter) (int, error)
}

type TradeSource interface {
	Sales(ctx context.Context) ([]trade.Sale, error)
	Purchases(ctx context.Context) ([]trade.Purchase, error)
}

type ExpenseSource interface {
	ExpenseOutflow(ctx context.Context) (decimal.Decimal, error)
}

type PayrollSource interface {
	Employees(ctx context.Context) ([]payroll.Employee, error)
	PendingSalaries(ctx context.Context) ([]decimal.Decimal, error)
}

// Cache stores rendered summaries. A miss, or any cache failure, reports false.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
