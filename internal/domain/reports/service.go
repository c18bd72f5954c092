package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const SummaryCacheKey = "reports:summary"

type Sources struct {
	Trade    TradeSource
	Expenses ExpenseSource
	Payroll  PayrollSource
}

type Service struct {
	src   Sources
	store StoreAPI
	cache Cache
	ttl   time.Duration
}

// NewService wires the report sources. cache may be nil; a zero ttl disables caching.
func NewService(src Sources, store StoreAPI, cache Cache, ttl time.Duration) *Service {
	return &Service{src: src, store: store, cache: cache, ttl: ttl}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s.cache != nil && s.ttl > 0 {
		if raw, ok := s.cache.Get(ctx, SummaryCacheKey); ok {
			var cached Summary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	in, err := s.summaryInput(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summarize(in)

	if s.cache != nil && s.ttl > 0 {
		raw, err := json.Marshal(summary)
		if err != nil {
			slog.Warn("summary cache encode failed", "err", err)
		} else {
			s.cache.Set(ctx, SummaryCacheKey, raw, s.ttl)
		}
	}
	return summary, nil
}

func (s *Service) summaryInput(ctx context.Context) (SummaryInput, error) {
	sales, err := s.src.Trade.Sales(ctx)
	if err != nil {
		return SummaryInput{}, fmt.Errorf("list sales: %w", err)
	}
	purchases, err := s.src.Trade.Purchases(ctx)
	if err != nil {
		return SummaryInput{}, fmt.Errorf("list purchases: %w", err)
	}
	expenses, err := s.src.Expenses.ExpenseOutflow(ctx)
	if err != nil {
		return SummaryInput{}, fmt.Errorf("expense outflow: %w", err)
	}
	pending, err := s.src.Payroll.PendingSalaries(ctx)
	if err != nil {
		return SummaryInput{}, fmt.Errorf("pending salaries: %w", err)
	}
	return SummaryInput{Sales: sales, Purchases: purchases, OtherExpenses: expenses, PendingSalaries: pending}, nil
}

func (s *Service) ProfitLoss(ctx context.Context) (ProfitLoss, error) {
	sales, err := s.src.Trade.Sales(ctx)
	if err != nil {
		return ProfitLoss{}, fmt.Errorf("list sales: %w", err)
	}
	purchases, err := s.src.Trade.Purchases(ctx)
	if err != nil {
		return ProfitLoss{}, fmt.Errorf("list purchases: %w", err)
	}
	expenses, err := s.src.Expenses.ExpenseOutflow(ctx)
	if err != nil {
		return ProfitLoss{}, fmt.Errorf("expense outflow: %w", err)
	}
	employees, err := s.src.Payroll.Employees(ctx)
	if err != nil {
		return ProfitLoss{}, fmt.Errorf("list employees: %w", err)
	}
	salaries := make([]decimal.Decimal, 0, len(employees))
	for _, e := range employees {
		salaries = append(salaries, e.Salary)
	}
	return ProfitAndLoss(ProfitLossInput{Sales: sales, Purchases: purchases, Salaries: salaries, Expenses: expenses}), nil
}

func (s *Service) JobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, int, error) {
	total, err := s.store.CountJobRuns(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	runs, err := s.store.ListJobRuns(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}
