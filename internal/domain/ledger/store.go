package ledger

import (
	"context"
	"time"

	"agrobooks/internal/platform/querier"
	"agrobooks/internal/platform/timeutil"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateEntry(ctx context.Context, e Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO transactions (id, party_id, party_name, txn_date, txn_type, amount, description)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, e.ID, e.PartyID, e.PartyName, timeutil.DateParam(e.Date), string(e.Type), e.Amount, e.Description)
	return err
}

func (s *Store) ListPartyEntries(ctx context.Context, partyID string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, party_id, party_name, txn_date, txn_type, amount, description
    FROM transactions
    WHERE party_id = $1
    ORDER BY txn_date, created_at
  `, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var date time.Time
		var typ string
		if err := rows.Scan(&e.ID, &e.PartyID, &e.PartyName, &date, &typ, &e.Amount, &e.Description); err != nil {
			return nil, err
		}
		e.Date = timeutil.FromDate(date)
		e.Type = EntryType(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) CreateExpense(ctx context.Context, e Expense) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO expenses (id, expense_date, party_name, expense_type, amount, txn_id, remark, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, e.ID, timeutil.DateParam(e.Date), e.PartyName, e.Type, e.Amount, e.TxnID, e.Remark, e.CreatedAt)
	return err
}

func (s *Store) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, expense_date, party_name, expense_type, amount, txn_id, remark, created_at
    FROM expenses
    ORDER BY expense_date, created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		var date time.Time
		if err := rows.Scan(&e.ID, &date, &e.PartyName, &e.Type, &e.Amount, &e.TxnID, &e.Remark, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = timeutil.FromDate(date)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
