package payroll

import (
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

func presentDays(month string, n int) []AttendanceRecord {
	start := day(month + "-01")
	records := make([]AttendanceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, AttendanceRecord{Date: start.AddDate(0, 0, i), Status: StatusPresent})
	}
	return records
}

func mustMonth(t *testing.T, s string) Month {
	t.Helper()
	m, err := ParseMonth(s)
	if err != nil {
		t.Fatalf("parse month %s: %v", s, err)
	}
	return m
}

func TestComputeMonth(t *testing.T) {
	month := mustMonth(t, "2025-01")
	slip := ComputeMonth(MonthInput{
		Salary:     dec("30000"),
		Month:      month,
		Attendance: BuildAttendance(presentDays("2025-01", 22)),
		Payments: []SalaryPayment{
			{Date: day("2025-01-10"), Amount: dec("5000")},
			{Date: day("2025-02-01"), Amount: dec("999")},
		},
	})
	if !slip.DayRate.Equal(dec("1000")) {
		t.Fatalf("expected day rate 1000, got %s", slip.DayRate)
	}
	if !slip.GrossEarned.Equal(dec("22000")) {
		t.Fatalf("expected gross 22000, got %s", slip.GrossEarned)
	}
	if !slip.TotalAdvance.Equal(dec("5000")) {
		t.Fatalf("expected advance 5000, got %s", slip.TotalAdvance)
	}
	if !slip.NetPayable.Equal(dec("17000")) {
		t.Fatalf("expected net 17000, got %s", slip.NetPayable)
	}
}

func TestComputeMonthNoAttendance(t *testing.T) {
	slip := ComputeMonth(MonthInput{
		Salary:   dec("30000"),
		Month:    mustMonth(t, "2025-01"),
		Payments: []SalaryPayment{{Date: day("2025-01-03"), Amount: dec("2000")}},
	})
	if !slip.NetPayable.Equal(dec("-2000")) {
		t.Fatalf("expected net -2000, got %s", slip.NetPayable)
	}
	if slip.AmountInWords != "Minus Two Thousand Only" {
		t.Fatalf("unexpected words %q", slip.AmountInWords)
	}
}

func TestComputeMonthDuplicateDatesOverwrite(t *testing.T) {
	records := []AttendanceRecord{
		{Date: day("2025-01-05"), Status: StatusPresent},
		{Date: day("2025-01-05"), Status: StatusAbsent},
		{Date: day("2025-01-06"), Status: StatusHalfDay},
		{Date: day("2025-01-06"), Status: StatusHalfDay},
		{Status: StatusPresent},
	}
	slip := ComputeMonth(MonthInput{
		Salary:     dec("30000"),
		Month:      mustMonth(t, "2025-01"),
		Attendance: BuildAttendance(records),
	})
	if slip.Attendance.Present != 0 || slip.Attendance.Absent != 1 || slip.Attendance.HalfDay != 1 {
		t.Fatalf("unexpected counts %+v", slip.Attendance)
	}
	if !slip.EffectiveDays.Equal(dec("0.5")) || !slip.GrossEarned.Equal(dec("500")) {
		t.Fatalf("expected 0.5 days and 500 gross, got %s and %s", slip.EffectiveDays, slip.GrossEarned)
	}
}

func TestComputeMonthRoundsHalfUp(t *testing.T) {
	slip := ComputeMonth(MonthInput{
		Salary:     dec("25000"),
		Month:      mustMonth(t, "2025-03"),
		Attendance: BuildAttendance(presentDays("2025-03", 22)),
	})
	if !slip.GrossEarned.Equal(dec("18333")) {
		t.Fatalf("expected gross 18333, got %s", slip.GrossEarned)
	}
}

func TestComputeMonthOvertimeAndIncentive(t *testing.T) {
	slip := ComputeMonth(MonthInput{
		Salary:        dec("24000"),
		Month:         mustMonth(t, "2025-01"),
		Attendance:    BuildAttendance(presentDays("2025-01", 10)),
		OvertimeHours: dec("4"),
		Incentive:     dec("100"),
	})
	if !slip.OTEarning.Equal(dec("400")) {
		t.Fatalf("expected OT 400, got %s", slip.OTEarning)
	}
	if !slip.TotalEarnings.Equal(dec("8500")) {
		t.Fatalf("expected total 8500, got %s", slip.TotalEarnings)
	}
	earnings, deductions := Totals(slip.Lines())
	if !earnings.Equal(dec("8500")) || !deductions.IsZero() {
		t.Fatalf("expected lines to total 8500/0, got %s/%s", earnings, deductions)
	}
}

func TestTotalsIgnoresUnknownTypes(t *testing.T) {
	earnings, deductions := Totals([]PayslipLine{
		{Type: "bonus", Amount: dec("100")},
		{Type: ElementTypeDeduction, Amount: dec("25")},
	})
	if !earnings.IsZero() || !deductions.Equal(dec("25")) {
		t.Fatalf("expected 0/25, got %s/%s", earnings, deductions)
	}
}
