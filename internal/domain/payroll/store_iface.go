package payroll

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	UpsertAttendance(ctx context.Context, record AttendanceRecord) error
	ListAttendance(ctx context.Context, employeeID string) ([]AttendanceRecord, error)
	CreatePayment(ctx context.Context, payment SalaryPayment) error
	ListPayments(ctx context.Context, employeeID string) ([]SalaryPayment, error)
}
