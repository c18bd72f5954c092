package payroll

const (
	ElementTypeEarning   = "earning"
	ElementTypeDeduction = "deduction"

	PaymentTypeAdvance = "Advance"

	// A month's salary is always paid over 30 days and a day is 8 hours,
	// whatever the calendar says.
	DaysPerMonth = 30
	HoursPerDay  = 8
)
