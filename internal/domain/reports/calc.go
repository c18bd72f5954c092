package reports

import (
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
)

// Summarize is the company's financial position:
//
//	receivable = sum of sale dues
//	payable    = sum of purchase dues + other expenses + pending salaries
//	net        = receivable - payable
func Summarize(in SummaryInput) Summary {
	receivable := decimal.Zero
	for _, s := range in.Sales {
		receivable = receivable.Add(s.Due())
	}
	purchaseDue := decimal.Zero
	for _, p := range in.Purchases {
		purchaseDue = purchaseDue.Add(p.Due())
	}
	pending := money.Sum(in.PendingSalaries...)
	payable := purchaseDue.Add(in.OtherExpenses).Add(pending)
	return Summary{
		Receivable:    receivable,
		PurchaseDue:   purchaseDue,
		OtherExpenses: in.OtherExpenses,
		PendingSalary: pending,
		Payable:       payable,
		Net:           receivable.Sub(payable),
	}
}

// ProfitAndLoss compares billed sales with purchases, salary and expenses.
// Salary is each employee's monthly figure, not what was actually paid.
func ProfitAndLoss(in ProfitLossInput) ProfitLoss {
	sales := decimal.Zero
	for _, s := range in.Sales {
		sales = sales.Add(s.TotalAmount)
	}
	purchases := decimal.Zero
	for _, p := range in.Purchases {
		purchases = purchases.Add(p.TotalAmount)
	}
	salary := money.Sum(in.Salaries...)
	out := purchases.Add(salary).Add(in.Expenses)
	net := sales.Sub(out)
	verdict := VerdictProfit
	if net.IsNegative() {
		verdict = VerdictLoss
	}
	return ProfitLoss{
		Sales:     sales,
		Purchases: purchases,
		Salary:    salary,
		Expenses:  in.Expenses,
		TotalOut:  out,
		Net:       net,
		Verdict:   verdict,
	}
}
