package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agrobooks/internal/platform/timeutil"
)

// MaxBulkDays bounds a single bulk attendance request.
const MaxBulkDays = 62

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: timeutil.Now}
}

// WithClock replaces the service clock, which decides today's date and the
// current month.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Employee{}, ErrMissingName
	}
	if e.Salary.IsNegative() {
		return Employee{}, ErrNegativeAmount
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	if err := s.store.CreateEmployee(ctx, e); err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

func (s *Service) Employees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) MarkAttendance(ctx context.Context, r AttendanceRecord) error {
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if _, err := s.store.GetEmployee(ctx, r.EmployeeID); err != nil {
		return err
	}
	r.Date = timeutil.Day(r.Date)
	return s.store.UpsertAttendance(ctx, r)
}

// MarkAttendanceRange sets the same status for every listed employee on every
// day from..to inclusive, returning the number of records written.
func (s *Service) MarkAttendanceRange(ctx context.Context, employeeIDs []string, from, to time.Time, status AttendanceStatus) (int, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	from, to = timeutil.Day(from), timeutil.Day(to)
	if from.IsZero() || to.IsZero() {
		return 0, ErrMissingDate
	}
	if to.Before(from) || to.Sub(from) > (MaxBulkDays-1)*24*time.Hour {
		return 0, ErrInvalidRange
	}
	written := 0
	for _, id := range employeeIDs {
		if _, err := s.store.GetEmployee(ctx, id); err != nil {
			return written, err
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if err := s.store.UpsertAttendance(ctx, AttendanceRecord{EmployeeID: id, Date: d, Status: status}); err != nil {
				return written, fmt.Errorf("mark attendance: %w", err)
			}
			written++
		}
	}
	return written, nil
}

func (s *Service) RecordAdvance(ctx context.Context, p SalaryPayment) (SalaryPayment, error) {
	if p.Amount.IsNegative() {
		return SalaryPayment{}, ErrNegativeAmount
	}
	if _, err := s.store.GetEmployee(ctx, p.EmployeeID); err != nil {
		return SalaryPayment{}, err
	}
	if p.Date.IsZero() {
		p.Date = timeutil.Day(s.now())
	}
	if p.Type == "" {
		p.Type = PaymentTypeAdvance
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.now()
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return SalaryPayment{}, fmt.Errorf("create salary payment: %w", err)
	}
	return p, nil
}

type employeeBook struct {
	employee   Employee
	attendance AttendanceMap
	payments   []SalaryPayment
}

func (s *Service) load(ctx context.Context, employeeID string) (employeeBook, error) {
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return employeeBook{}, err
	}
	records, err := s.store.ListAttendance(ctx, employeeID)
	if err != nil {
		return employeeBook{}, fmt.Errorf("list attendance: %w", err)
	}
	payments, err := s.store.ListPayments(ctx, employeeID)
	if err != nil {
		return employeeBook{}, fmt.Errorf("list payments: %w", err)
	}
	return employeeBook{employee: employee, attendance: BuildAttendance(records), payments: payments}, nil
}

// Payslip computes one month. The zero Month means the current month.
func (s *Service) Payslip(ctx context.Context, employeeID string, month Month, overtimeHours, incentive decimal.Decimal) (Payslip, error) {
	if month == (Month{}) {
		month = MonthOf(s.now())
	}
	book, err := s.load(ctx, employeeID)
	if err != nil {
		return Payslip{}, err
	}
	slip := ComputeMonth(MonthInput{
		Salary:        book.employee.Salary,
		Month:         month,
		Attendance:    book.attendance,
		Payments:      book.payments,
		OvertimeHours: overtimeHours,
		Incentive:     incentive,
	})
	slip.EmployeeID = book.employee.ID
	slip.Name = book.employee.Name
	return slip, nil
}

func (s *Service) Passbook(ctx context.Context, employeeID string) (Passbook, error) {
	book, err := s.load(ctx, employeeID)
	if err != nil {
		return Passbook{}, err
	}
	return BuildPassbook(PassbookInput{
		Employee:   book.employee,
		Months:     ActiveMonths(book.employee.JoiningDate, s.now()),
		Attendance: book.attendance,
		Payments:   book.payments,
	}), nil
}

// PendingSalaries is every employee's passbook closing balance.
func (s *Service) PendingSalaries(ctx context.Context) ([]decimal.Decimal, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]decimal.Decimal, 0, len(employees))
	for _, e := range employees {
		book, err := s.Passbook(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		pending = append(pending, book.ClosingBalance)
	}
	return pending, nil
}
