package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"agrobooks/internal/platform/querier"
	"agrobooks/internal/platform/timeutil"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, name, designation, mobile, salary, joining_date, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, e.ID, e.Name, e.Designation, e.Mobile, e.Salary, timeutil.DateParam(e.JoiningDate), e.CreatedAt)
	return err
}

const employeeColumns = `id, name, designation, mobile, salary, joining_date, created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	var joining *time.Time
	if err := row.Scan(&e.ID, &e.Name, &e.Designation, &e.Mobile, &e.Salary, &joining, &e.CreatedAt); err != nil {
		return Employee{}, err
	}
	if joining != nil {
		e.JoiningDate = timeutil.FromDate(*joining)
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	e, err := scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return e, err
}

// UpsertAttendance keeps one row per employee and day; re-marking overwrites.
func (s *Store) UpsertAttendance(ctx context.Context, r AttendanceRecord) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance (employee_id, attendance_date, status)
    VALUES ($1,$2,$3)
    ON CONFLICT (employee_id, attendance_date)
    DO UPDATE SET status = EXCLUDED.status, updated_at = now()
  `, r.EmployeeID, timeutil.DateParam(r.Date), string(r.Status))
	return err
}

func (s *Store) ListAttendance(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, attendance_date, status
    FROM attendance
    WHERE employee_id = $1
    ORDER BY attendance_date
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []AttendanceRecord{}
	for rows.Next() {
		var r AttendanceRecord
		var date time.Time
		var status string
		if err := rows.Scan(&r.EmployeeID, &date, &status); err != nil {
			return nil, err
		}
		r.Date = timeutil.FromDate(date)
		r.Status = AttendanceStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) CreatePayment(ctx context.Context, p SalaryPayment) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO salary_payments (id, employee_id, payment_date, amount, payment_type, remark, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, p.ID, p.EmployeeID, timeutil.DateParam(p.Date), p.Amount, p.Type, p.Remark, p.CreatedAt)
	return err
}

func (s *Store) ListPayments(ctx context.Context, employeeID string) ([]SalaryPayment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, payment_date, amount, payment_type, remark, created_at
    FROM salary_payments
    WHERE employee_id = $1
    ORDER BY payment_date, created_at
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []SalaryPayment{}
	for rows.Next() {
		var p SalaryPayment
		var date time.Time
		if err := rows.Scan(&p.ID, &p.EmployeeID, &date, &p.Amount, &p.Type, &p.Remark, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Date = timeutil.FromDate(date)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
