package payroll

import (
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
)

type PassbookInput struct {
	Employee   Employee
	Months     []Month
	Attendance AttendanceMap
	Payments   []SalaryPayment
}

// BuildPassbook folds each month's earned-minus-advanced into a running
// balance, oldest month first. Months are sorted and de-duplicated, so the
// order they are passed in does not matter. Months with neither work nor
// advances are kept in the fold but marked not visible.
func BuildPassbook(in PassbookInput) Passbook {
	rate := DayRate(in.Employee.Salary)
	book := Passbook{
		EmployeeID:   in.Employee.ID,
		Name:         in.Employee.Name,
		Salary:       in.Employee.Salary,
		Rows:         []PassbookRow{},
		TotalEarned:  decimal.Zero,
		TotalAdvance: decimal.Zero,
	}
	balance := decimal.Zero
	for _, month := range sortMonths(in.Months) {
		worked := EffectiveDays(in.Attendance.Count(month))
		earned := money.Round(rate.Mul(worked))
		advance := AdvancesIn(in.Payments, month)
		net := earned.Sub(advance)
		balance = balance.Add(net)
		book.TotalEarned = book.TotalEarned.Add(earned)
		book.TotalAdvance = book.TotalAdvance.Add(advance)
		book.Rows = append(book.Rows, PassbookRow{
			Month:          month,
			WorkedDays:     worked,
			GrossEarned:    earned,
			Advance:        advance,
			MonthlyNet:     net,
			RunningBalance: balance,
			Visible:        !worked.IsZero() || !advance.IsZero(),
		})
	}
	book.ClosingBalance = balance
	book.Side = money.Side(balance)
	return book
}

// VisibleRows returns the rows a passbook view shows, newest first.
func (p Passbook) VisibleRows() []PassbookRow {
	rows := []PassbookRow{}
	for i := len(p.Rows) - 1; i >= 0; i-- {
		if p.Rows[i].Visible {
			rows = append(rows, p.Rows[i])
		}
	}
	return rows
}
