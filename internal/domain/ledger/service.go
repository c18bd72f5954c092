package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agrobooks/internal/platform/timeutil"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: timeutil.Now}
}

// RecordTransaction stores a party ledger entry. A missing date means today.
func (s *Service) RecordTransaction(ctx context.Context, e Entry) (Entry, error) {
	e.PartyID = strings.TrimSpace(e.PartyID)
	if e.PartyID == "" {
		return Entry{}, ErrMissingParty
	}
	if e.Type != In && e.Type != Out {
		return Entry{}, ErrInvalidType
	}
	if e.Amount.IsNegative() {
		return Entry{}, ErrNegativeAmount
	}
	if e.Date.IsZero() {
		e.Date = timeutil.Day(s.now())
	}
	e.ID = uuid.NewString()
	if err := s.store.CreateEntry(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("create transaction: %w", err)
	}
	return e, nil
}

func (s *Service) PartyStatement(ctx context.Context, partyID string) (Statement, error) {
	entries, err := s.store.ListPartyEntries(ctx, partyID)
	if err != nil {
		return Statement{}, err
	}
	return Compute(entries), nil
}

func (s *Service) RecordExpense(ctx context.Context, e Expense) (Expense, error) {
	e.PartyName = strings.TrimSpace(e.PartyName)
	if e.PartyName == "" {
		return Expense{}, ErrMissingParty
	}
	if e.Type != ExpensePaymentIn && e.Type != ExpensePaymentOut {
		return Expense{}, ErrInvalidType
	}
	if e.Amount.IsNegative() {
		return Expense{}, ErrNegativeAmount
	}
	if e.Date.IsZero() {
		e.Date = timeutil.Day(s.now())
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	if err := s.store.CreateExpense(ctx, e); err != nil {
		return Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (s *Service) expenseEntries(ctx context.Context) ([]Entry, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(expenses))
	for _, e := range expenses {
		entries = append(entries, e.Entry())
	}
	return entries, nil
}

func (s *Service) ExpenseStatement(ctx context.Context, c Criteria) (Statement, error) {
	entries, err := s.expenseEntries(ctx)
	if err != nil {
		return Statement{}, err
	}
	return Compute(Filter(entries, c)), nil
}

// ExpenseOutflow is the total paid out of the expense book.
func (s *Service) ExpenseOutflow(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.expenseEntries(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Outflow(entries), nil
}
