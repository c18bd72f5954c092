package ledger

import "context"

type StoreAPI interface {
	CreateEntry(ctx context.Context, entry Entry) error
	ListPartyEntries(ctx context.Context, partyID string) ([]Entry, error)
	CreateExpense(ctx context.Context, expense Expense) error
	ListExpenses(ctx context.Context) ([]Expense, error)
}
