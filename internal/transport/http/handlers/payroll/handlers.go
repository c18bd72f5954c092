package payrollhandler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/audit"
	"agrobooks/internal/domain/money"
	"agrobooks/internal/domain/payroll"
	"agrobooks/internal/platform/export"
	"agrobooks/internal/transport/http/api"
	"agrobooks/internal/transport/http/middleware"
	"agrobooks/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Audit   *audit.Service
}

func NewHandler(service *payroll.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}/payslip", h.handlePayslip)
		r.Get("/{employeeID}/passbook", h.handlePassbook)
		r.Get("/{employeeID}/passbook/export", h.handlePassbookExport)
	})
	r.Post("/attendance", h.handleMarkAttendance)
	r.Post("/attendance/bulk", h.handleMarkAttendanceBulk)
	r.Post("/salary-payments", h.handleRecordAdvance)
}

type employeeRequest struct {
	Name        string        `json:"name" validate:"required"`
	Designation string        `json:"designation"`
	Mobile      string        `json:"mobile" validate:"omitempty,numeric,len=10"`
	Salary      money.Lenient `json:"salary"`
	JoiningDate string        `json:"joiningDate"`
}

type attendanceRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=Present Absent Half-Day"`
}

type bulkAttendanceRequest struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1,dive,required"`
	From        string   `json:"from" validate:"required"`
	To          string   `json:"to" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=Present Absent Half-Day"`
}

type advanceRequest struct {
	EmployeeID string        `json:"employeeId" validate:"required"`
	Date       string        `json:"date"`
	Amount     money.Lenient `json:"amount"`
	Remark     string        `json:"remark"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.Employees(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "employees_failed", "failed to list employees", err)
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	items, total := shared.Slice(employees, page)
	api.Page(w, items, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employeeRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	joining := validator.OptionalDate("joiningDate", payload.JoiningDate)
	if validator.Reject(w, reqID) {
		return
	}

	employee, err := h.Service.CreateEmployee(r.Context(), payroll.Employee{
		Name:        payload.Name,
		Designation: strings.TrimSpace(payload.Designation),
		Mobile:      strings.TrimSpace(payload.Mobile),
		Salary:      payload.Salary.Decimal(),
		JoiningDate: joining,
	})
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "employee_create_failed", "failed to create employee", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionEmployeeCreate, "employee", employee.ID, reqID, shared.ClientIP(r), employee)
	api.Created(w, employee, reqID)
}

func (h *Handler) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload attendanceRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	date := validator.OptionalDate("date", payload.Date)
	if validator.Reject(w, reqID) {
		return
	}

	record := payroll.AttendanceRecord{
		EmployeeID: payload.EmployeeID,
		Date:       date,
		Status:     payroll.AttendanceStatus(payload.Status),
	}
	if err := h.Service.MarkAttendance(r.Context(), record); err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "attendance_failed", "failed to mark attendance", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionAttendanceMark, "attendance", record.EmployeeID, reqID, shared.ClientIP(r), record)
	api.Success(w, record, reqID)
}

func (h *Handler) handleMarkAttendanceBulk(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload bulkAttendanceRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	from := validator.OptionalDate("from", payload.From)
	to := validator.OptionalDate("to", payload.To)
	validator.DateOrder("from", from, "to", to)
	if validator.Reject(w, reqID) {
		return
	}

	written, err := h.Service.MarkAttendanceRange(r.Context(), payload.EmployeeIDs, from, to, payroll.AttendanceStatus(payload.Status))
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "attendance_failed", "failed to mark attendance", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionAttendanceMark, "attendance", strings.Join(payload.EmployeeIDs, ","), reqID, shared.ClientIP(r), payload)
	api.Success(w, map[string]int{"written": written}, reqID)
}

func (h *Handler) handleRecordAdvance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload advanceRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	date := validator.OptionalDate("date", payload.Date)
	if validator.Reject(w, reqID) {
		return
	}

	payment, err := h.Service.RecordAdvance(r.Context(), payroll.SalaryPayment{
		EmployeeID: payload.EmployeeID,
		Date:       date,
		Amount:     payload.Amount.Decimal(),
		Type:       payroll.PaymentTypeAdvance,
		Remark:     payload.Remark,
	})
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "advance_failed", "failed to record advance", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionAdvanceCreate, "salary_payment", payment.ID, reqID, shared.ClientIP(r), payment)
	api.Created(w, payment, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	var month payroll.Month
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		parsed, err := payroll.ParseMonth(raw)
		if err != nil {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "month", Reason: "must be YYYY-MM"}})
			return
		}
		month = parsed
	}

	slip, err := h.Service.Payslip(r.Context(), chi.URLParam(r, "employeeID"), month,
		money.SafeNumber(query.Get("overtimeHours")), money.SafeNumber(query.Get("incentive")))
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "payslip_failed", "failed to build payslip", err)
		return
	}
	api.Success(w, map[string]any{"payslip": slip, "lines": slip.Lines()}, reqID)
}

func (h *Handler) handlePassbook(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	book, err := h.Service.Passbook(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "passbook_failed", "failed to build passbook", err)
		return
	}
	book.Rows = book.VisibleRows()
	api.Success(w, book, reqID)
}

func (h *Handler) handlePassbookExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	book, err := h.Service.Passbook(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if rejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "passbook_failed", "failed to build passbook", err)
		return
	}

	sheet := export.Sheet{
		Name:    "Passbook",
		Headers: []string{"Month", "Worked Days", "Earned", "Advance", "Net", "Balance"},
	}
	for _, row := range book.VisibleRows() {
		sheet.Rows = append(sheet.Rows, []any{
			row.Month.String(),
			row.WorkedDays.InexactFloat64(),
			money.Display(row.GrossEarned).InexactFloat64(),
			money.Display(row.Advance).InexactFloat64(),
			money.Display(row.MonthlyNet).InexactFloat64(),
			money.Display(row.RunningBalance).InexactFloat64(),
		})
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="passbook-%s.xlsx"`, book.EmployeeID))
	if err := export.WriteXLSX(w, sheet); err != nil {
		shared.ServerError(w, reqID, "export_failed", "failed to export passbook", err)
	}
}

func rejected(w http.ResponseWriter, reqID string, err error) bool {
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return true
	}
	var field string
	switch {
	case errors.Is(err, payroll.ErrMissingName):
		field = "name"
	case errors.Is(err, payroll.ErrInvalidStatus):
		field = "status"
	case errors.Is(err, payroll.ErrMissingDate):
		field = "date"
	case errors.Is(err, payroll.ErrNegativeAmount):
		field = "amount"
	case errors.Is(err, payroll.ErrInvalidRange):
		field = "to"
	case errors.Is(err, payroll.ErrInvalidMonth):
		field = "month"
	default:
		return false
	}
	shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: field, Reason: err.Error()}})
	return true
}
