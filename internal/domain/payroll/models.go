package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusHalfDay AttendanceStatus = "Half-Day"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

type Employee struct {
	ID          string          `json:"employeeId"`
	Name        string          `json:"name"`
	Designation string          `json:"designation,omitempty"`
	Mobile      string          `json:"mobile,omitempty"`
	Salary      decimal.Decimal `json:"salary"`
	JoiningDate time.Time       `json:"joiningDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type AttendanceRecord struct {
	EmployeeID string           `json:"employeeId"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
}

type SalaryPayment struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	Remark     string          `json:"remark,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type AttendanceCount struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"halfDay"`
}

type Payslip struct {
	EmployeeID      string          `json:"employeeId,omitempty"`
	Name            string          `json:"name,omitempty"`
	Month           Month           `json:"month"`
	Salary          decimal.Decimal `json:"salary"`
	DayRate         decimal.Decimal `json:"dayRate"`
	Attendance      AttendanceCount `json:"attendance"`
	EffectiveDays   decimal.Decimal `json:"effectiveDays"`
	GrossEarned     decimal.Decimal `json:"grossEarned"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
	OTEarning       decimal.Decimal `json:"otEarning"`
	Incentive       decimal.Decimal `json:"incentive"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	TotalAdvance    decimal.Decimal `json:"totalAdvance"`
	PFDeduction     decimal.Decimal `json:"pfDeduction"`
	ESIDeduction    decimal.Decimal `json:"esiDeduction"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPayable      decimal.Decimal `json:"netPayable"`
	AmountInWords   string          `json:"amountInWords"`
}

type PayslipLine struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type PassbookRow struct {
	Month          Month           `json:"month"`
	WorkedDays     decimal.Decimal `json:"workedDays"`
	GrossEarned    decimal.Decimal `json:"grossEarned"`
	Advance        decimal.Decimal `json:"advance"`
	MonthlyNet     decimal.Decimal `json:"monthlyNet"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Visible        bool            `json:"visible"`
}

type Passbook struct {
	EmployeeID     string          `json:"employeeId"`
	Name           string          `json:"name"`
	Salary         decimal.Decimal `json:"salary"`
	Rows           []PassbookRow   `json:"rows"`
	TotalEarned    decimal.Decimal `json:"totalEarned"`
	TotalAdvance   decimal.Decimal `json:"totalAdvance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Side           string          `json:"side"`
}
