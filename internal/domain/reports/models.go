package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/trade"
)

type SummaryInput struct {
	Sales           []trade.Sale
	Purchases       []trade.Purchase
	OtherExpenses   decimal.Decimal
	PendingSalaries []decimal.Decimal
}

type Summary struct {
	Receivable    decimal.Decimal `json:"receivable"`
	PurchaseDue   decimal.Decimal `json:"purchaseDue"`
	OtherExpenses decimal.Decimal `json:"otherExpenses"`
	PendingSalary decimal.Decimal `json:"pendingSalary"`
	Payable       decimal.Decimal `json:"payable"`
	Net           decimal.Decimal `json:"net"`
}

type ProfitLossInput struct {
	Sales     []trade.Sale
	Purchases []trade.Purchase
	Salaries  []decimal.Decimal
	Expenses  decimal.Decimal
}

const (
	VerdictProfit = "PROFIT"
	VerdictLoss   = "LOSS"
)

type ProfitLoss struct {
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Salary    decimal.Decimal `json:"salary"`
	Expenses  decimal.Decimal `json:"expenses"`
	TotalOut  decimal.Decimal `json:"totalOut"`
	Net       decimal.Decimal `json:"net"`
	Verdict   string          `json:"verdict"`
}

type JobRun struct {
	ID          string         `json:"id"`
	JobType     string         `json:"jobType"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
}

type JobRunFilter struct {
	JobType     string
	Status      string
	StartedFrom *time.Time
	StartedTo   *time.Time
}
