package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	In  EntryType = "IN"
	Out EntryType = "OUT"
)

// Entry is one money movement. Amount is a magnitude; Type carries the sign.
type Entry struct {
	ID          string          `json:"id"`
	PartyID     string          `json:"partyId,omitempty"`
	PartyName   string          `json:"partyName"`
	Date        time.Time       `json:"date"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type Row struct {
	Entry
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Side           string          `json:"side"`
}

type Statement struct {
	Rows     []Row           `json:"rows"`
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Balance  decimal.Decimal `json:"balance"`
	Side     string          `json:"side"`
}

// Criteria narrows the expense book. Party "" or "All" matches everyone; the
// date range applies only when both ends are set.
type Criteria struct {
	Party string
	From  time.Time
	To    time.Time
}

const (
	ExpensePaymentIn  = "Payment In"
	ExpensePaymentOut = "Payment Out"
)

type Expense struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	PartyName string          `json:"partyName"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	TxnID     string          `json:"txnId,omitempty"`
	Remark    string          `json:"remark,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Entry maps the expense onto the ledger. Anything but Payment In is an outflow.
func (e Expense) Entry() Entry {
	typ := Out
	if e.Type == ExpensePaymentIn {
		typ = In
	}
	return Entry{
		ID:          e.ID,
		PartyName:   e.PartyName,
		Date:        e.Date,
		Type:        typ,
		Amount:      e.Amount,
		Description: e.Remark,
	}
}
