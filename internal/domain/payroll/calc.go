package payroll

import (
	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/money"
)

var (
	daysPerMonth = decimal.NewFromInt(DaysPerMonth)
	hoursPerDay  = decimal.NewFromInt(HoursPerDay)
	halfDay      = decimal.New(5, -1)
)

type MonthInput struct {
	Salary        decimal.Decimal
	Month         Month
	Attendance    AttendanceMap
	Payments      []SalaryPayment
	OvertimeHours decimal.Decimal
	Incentive     decimal.Decimal
}

func DayRate(salary decimal.Decimal) decimal.Decimal {
	return salary.Div(daysPerMonth)
}

func EffectiveDays(c AttendanceCount) decimal.Decimal {
	return decimal.NewFromInt(int64(c.Present)).Add(decimal.NewFromInt(int64(c.HalfDay)).Mul(halfDay))
}

// AdvancesIn sums the payments dated inside the month.
func AdvancesIn(payments []SalaryPayment, month Month) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if month.Contains(p.Date) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ComputeMonth works out one month's pay:
//
//	gross  = round(salary/30 * (present + 0.5*halfDay))
//	ot     = hours * salary/30 / 8
//	total  = round(gross + ot + incentive)
//	net    = total - advances in the month
//
// Net pay may go negative when advances exceed earnings.
func ComputeMonth(in MonthInput) Payslip {
	rate := DayRate(in.Salary)
	count := in.Attendance.Count(in.Month)
	days := EffectiveDays(count)
	gross := money.Round(rate.Mul(days))
	ot := in.OvertimeHours.Mul(rate).Div(hoursPerDay)
	total := money.Round(gross.Add(ot).Add(in.Incentive))
	advance := AdvancesIn(in.Payments, in.Month)
	net := total.Sub(advance)
	return Payslip{
		Month:           in.Month,
		Salary:          in.Salary,
		DayRate:         rate,
		Attendance:      count,
		EffectiveDays:   days,
		GrossEarned:     gross,
		OvertimeHours:   in.OvertimeHours,
		OTEarning:       ot,
		Incentive:       in.Incentive,
		TotalEarnings:   total,
		TotalAdvance:    advance,
		PFDeduction:     decimal.Zero,
		ESIDeduction:    decimal.Zero,
		TotalDeductions: advance,
		NetPayable:      net,
		AmountInWords:   money.InWords(net),
	}
}

// Lines is the earning and deduction breakdown printed on the payslip.
func (p Payslip) Lines() []PayslipLine {
	return []PayslipLine{
		{Name: "Basic (earned)", Type: ElementTypeEarning, Amount: p.GrossEarned},
		{Name: "Overtime", Type: ElementTypeEarning, Amount: p.OTEarning},
		{Name: "Incentive", Type: ElementTypeEarning, Amount: p.Incentive},
		{Name: "Advance", Type: ElementTypeDeduction, Amount: p.TotalAdvance},
		{Name: "PF", Type: ElementTypeDeduction, Amount: p.PFDeduction},
		{Name: "ESI", Type: ElementTypeDeduction, Amount: p.ESIDeduction},
	}
}

// Totals splits lines into earnings and deductions; unknown types are ignored.
func Totals(lines []PayslipLine) (earnings, deductions decimal.Decimal) {
	earnings, deductions = decimal.Zero, decimal.Zero
	for _, line := range lines {
		switch line.Type {
		case ElementTypeEarning:
			earnings = earnings.Add(line.Amount)
		case ElementTypeDeduction:
			deductions = deductions.Add(line.Amount)
		}
	}
	return earnings, deductions
}
