package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"agrobooks/internal/platform/timeutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	return timeutil.ParseDay(s)
}

func TestCompute(t *testing.T) {
	st := Compute([]Entry{
		{Date: day("2025-01-01"), Type: In, Amount: dec("1000")},
		{Date: day("2025-01-02"), Type: Out, Amount: dec("400")},
		{Date: day("2025-01-03"), Type: In, Amount: dec("250")},
	})
	want := []string{"1000", "600", "850"}
	for i, w := range want {
		if !st.Rows[i].RunningBalance.Equal(dec(w)) {
			t.Fatalf("row %d: expected %s, got %s", i, w, st.Rows[i].RunningBalance)
		}
	}
	if !st.TotalIn.Equal(dec("1250")) || !st.TotalOut.Equal(dec("400")) {
		t.Fatalf("expected totals 1250/400, got %s/%s", st.TotalIn, st.TotalOut)
	}
	if !st.Balance.Equal(dec("850")) || st.Side != "Cr" {
		t.Fatalf("expected 850 Cr, got %s %s", st.Balance, st.Side)
	}
}

func TestComputeBalanceMatchesTotals(t *testing.T) {
	entries := []Entry{
		{Date: day("2025-02-10"), Type: Out, Amount: dec("75.25")},
		{Date: day("2025-02-01"), Type: In, Amount: dec("10")},
		{Date: day("2025-02-05"), Type: Out, Amount: dec("300")},
		{Date: day("2025-02-07"), Type: In, Amount: dec("99.99")},
	}
	st := Compute(entries)
	last := st.Rows[len(st.Rows)-1].RunningBalance
	if !last.Equal(st.Balance) || !st.Balance.Equal(st.TotalIn.Sub(st.TotalOut)) {
		t.Fatalf("expected last row, balance and totals to agree, got %s %s %s-%s", last, st.Balance, st.TotalIn, st.TotalOut)
	}
	if st.Side != "Dr" {
		t.Fatalf("expected Dr, got %s", st.Side)
	}
}

func TestComputeEmpty(t *testing.T) {
	st := Compute(nil)
	if st.Rows == nil || len(st.Rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", st.Rows)
	}
	if !st.Balance.IsZero() || st.Side != "" {
		t.Fatalf("expected zero balance with no side, got %s %q", st.Balance, st.Side)
	}
}

func TestComputeResortsStably(t *testing.T) {
	entries := []Entry{
		{ID: "late", Date: day("2025-01-05"), Type: In, Amount: dec("1")},
		{ID: "same-1", Date: day("2025-01-01"), Type: In, Amount: dec("1")},
		{ID: "same-2", Date: day("2025-01-01"), Type: Out, Amount: dec("1")},
	}
	st := Compute(entries)
	order := []string{"same-1", "same-2", "late"}
	for i, id := range order {
		if st.Rows[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, st.Rows[i].ID)
		}
	}
	if entries[0].ID != "late" {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{PartyName: "Diesel", Date: day("2025-01-01")},
		{PartyName: "Labour", Date: day("2025-01-15")},
		{PartyName: "Diesel", Date: day("2025-02-01")},
	}
	if got := Filter(entries, Criteria{Party: "All"}); len(got) != 3 {
		t.Fatalf("expected all entries, got %d", len(got))
	}
	if got := Filter(entries, Criteria{Party: "Diesel"}); len(got) != 2 {
		t.Fatalf("expected 2 diesel entries, got %d", len(got))
	}
	if got := Filter(entries, Criteria{From: day("2025-01-15")}); len(got) != 3 {
		t.Fatalf("expected open range to be ignored, got %d", len(got))
	}
	got := Filter(entries, Criteria{From: day("2025-01-01"), To: day("2025-01-15")})
	if len(got) != 2 {
		t.Fatalf("expected inclusive range to keep 2, got %d", len(got))
	}
}

type fakeStore struct {
	entries  []Entry
	expenses []Expense
}

func (f *fakeStore) CreateEntry(_ context.Context, e Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeStore) ListPartyEntries(_ context.Context, partyID string) ([]Entry, error) {
	out := []Entry{}
	for _, e := range f.entries {
		if e.PartyID == partyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateExpense(_ context.Context, e Expense) error {
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeStore) ListExpenses(context.Context) ([]Expense, error) {
	return f.expenses, nil
}

func TestServiceExpenseBook(t *testing.T) {
	svc := NewService(&fakeStore{})
	svc.now = func() time.Time { return day("2025-03-10") }
	ctx := context.Background()

	for _, e := range []Expense{
		{PartyName: "Owner", Type: ExpensePaymentIn, Amount: dec("5000")},
		{PartyName: "Diesel", Type: ExpensePaymentOut, Amount: dec("1200")},
		{PartyName: "Labour", Type: ExpensePaymentOut, Amount: dec("800")},
	} {
		if _, err := svc.RecordExpense(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := svc.RecordExpense(ctx, Expense{PartyName: "X", Type: "Refund", Amount: dec("1")}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	st, err := svc.ExpenseStatement(ctx, Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Balance.Equal(dec("3000")) {
		t.Fatalf("expected balance 3000, got %s", st.Balance)
	}
	out, err := svc.ExpenseOutflow(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(dec("2000")) {
		t.Fatalf("expected outflow 2000, got %s", out)
	}
}

func TestServiceRecordTransaction(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()
	if _, err := svc.RecordTransaction(ctx, Entry{PartyID: "p1", Type: In, Amount: dec("-5")}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := svc.RecordTransaction(ctx, Entry{PartyID: "p1", Type: "X", Amount: dec("5")}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	saved, err := svc.RecordTransaction(ctx, Entry{PartyID: "p1", Type: Out, Amount: dec("5")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" || saved.Date.IsZero() {
		t.Fatalf("expected id and date to be filled, got %+v", saved)
	}
	st, err := svc.PartyStatement(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Balance.Equal(dec("-5")) || st.Side != "Dr" {
		t.Fatalf("expected -5 Dr, got %s %s", st.Balance, st.Side)
	}
}

func TestComputeSkipsUnknownTypes(t *testing.T) {
	st := Compute([]Entry{
		{ID: "in", Date: day("2025-01-01"), Type: In, Amount: dec("500")},
		{ID: "junk", Date: day("2025-01-02"), Type: "REFUND", Amount: dec("200")},
		{ID: "blank", Date: day("2025-01-03"), Amount: dec("50")},
		{ID: "out", Date: day("2025-01-04"), Type: Out, Amount: dec("100")},
	})
	if len(st.Rows) != 2 || st.Rows[0].ID != "in" || st.Rows[1].ID != "out" {
		t.Fatalf("expected only IN and OUT rows, got %+v", st.Rows)
	}
	if !st.TotalOut.Equal(dec("100")) || !st.Balance.Equal(dec("400")) || st.Side != "Cr" {
		t.Fatalf("unexpected totals out=%s balance=%s side=%q", st.TotalOut, st.Balance, st.Side)
	}
}
