package ledgerhandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/audit"
	"agrobooks/internal/domain/ledger"
	"agrobooks/internal/domain/money"
	"agrobooks/internal/platform/export"
	"agrobooks/internal/platform/timeutil"
	"agrobooks/internal/transport/http/api"
	"agrobooks/internal/transport/http/middleware"
	"agrobooks/internal/transport/http/shared"
)

type Handler struct {
	Service *ledger.Service
	Audit   *audit.Service
}

func NewHandler(service *ledger.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/transactions", h.handleCreateTransaction)
	r.Get("/parties/{partyID}/ledger", h.handlePartyLedger)
	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", h.handleExpenseStatement)
		r.Post("/", h.handleCreateExpense)
		r.Get("/export", h.handleExpenseExport)
	})
}

type transactionRequest struct {
	PartyID     string        `json:"partyId" validate:"required"`
	PartyName   string        `json:"partyName"`
	Date        string        `json:"date"`
	Type        string        `json:"type" validate:"required,oneof=IN OUT"`
	Amount      money.Lenient `json:"amount"`
	Description string        `json:"description"`
}

type expenseRequest struct {
	Date      string        `json:"date"`
	PartyName string        `json:"partyName" validate:"required"`
	Type      string        `json:"type" validate:"required,oneof='Payment In' 'Payment Out'"`
	Amount    money.Lenient `json:"amount"`
	TxnID     string        `json:"txnId"`
	Remark    string        `json:"remark"`
}

func (h *Handler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload transactionRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	date := validator.OptionalDate("date", payload.Date)
	if validator.Reject(w, reqID) {
		return
	}

	entry, err := h.Service.RecordTransaction(r.Context(), ledger.Entry{
		PartyID:     payload.PartyID,
		PartyName:   strings.TrimSpace(payload.PartyName),
		Date:        date,
		Type:        ledger.EntryType(payload.Type),
		Amount:      payload.Amount.Decimal(),
		Description: payload.Description,
	})
	if err != nil {
		if entryRejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "transaction_create_failed", "failed to record transaction", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionTransactionCreate, "transaction", entry.ID, reqID, shared.ClientIP(r), entry)
	api.Created(w, entry, reqID)
}

func (h *Handler) handlePartyLedger(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	statement, err := h.Service.PartyStatement(r.Context(), chi.URLParam(r, "partyID"))
	if err != nil {
		shared.ServerError(w, reqID, "ledger_failed", "failed to build party ledger", err)
		return
	}
	api.Success(w, statement, reqID)
}

func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload expenseRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	date := validator.OptionalDate("date", payload.Date)
	if validator.Reject(w, reqID) {
		return
	}

	expense, err := h.Service.RecordExpense(r.Context(), ledger.Expense{
		Date:      date,
		PartyName: payload.PartyName,
		Type:      payload.Type,
		Amount:    payload.Amount.Decimal(),
		TxnID:     strings.TrimSpace(payload.TxnID),
		Remark:    payload.Remark,
	})
	if err != nil {
		if entryRejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "expense_create_failed", "failed to record expense", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionExpenseCreate, "expense", expense.ID, reqID, shared.ClientIP(r), expense)
	api.Created(w, expense, reqID)
}

func (h *Handler) expenseStatement(w http.ResponseWriter, r *http.Request) (ledger.Statement, bool) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	validator := shared.NewValidator()
	from := validator.OptionalDate("from", query.Get("from"))
	to := validator.OptionalDate("to", query.Get("to"))
	validator.DateOrder("from", from, "to", to)
	if validator.Reject(w, reqID) {
		return ledger.Statement{}, false
	}

	statement, err := h.Service.ExpenseStatement(r.Context(), ledger.Criteria{
		Party: strings.TrimSpace(query.Get("party")),
		From:  from,
		To:    to,
	})
	if err != nil {
		shared.ServerError(w, reqID, "expenses_failed", "failed to build expense statement", err)
		return ledger.Statement{}, false
	}
	return statement, true
}

func (h *Handler) handleExpenseStatement(w http.ResponseWriter, r *http.Request) {
	statement, ok := h.expenseStatement(w, r)
	if !ok {
		return
	}
	api.Success(w, statement, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExpenseExport(w http.ResponseWriter, r *http.Request) {
	statement, ok := h.expenseStatement(w, r)
	if !ok {
		return
	}
	sheet := export.Sheet{
		Name:    "Expenses",
		Headers: []string{"Date", "Party", "Type", "Amount", "Balance", "Side", "Remark"},
	}
	for _, row := range statement.Rows {
		amount, _ := money.Display(row.Amount).Float64()
		balance, _ := money.Display(row.RunningBalance.Abs()).Float64()
		sheet.Rows = append(sheet.Rows, []any{
			timeutil.FormatDay(row.Date), row.PartyName, string(row.Type), amount, balance, row.Side, row.Description,
		})
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.xlsx"`)
	if err := export.WriteXLSX(w, sheet); err != nil {
		shared.ServerError(w, middleware.GetRequestID(r.Context()), "export_failed", "failed to export expenses", err)
	}
}

func entryRejected(w http.ResponseWriter, reqID string, err error) bool {
	var field, reason string
	switch {
	case errors.Is(err, ledger.ErrMissingParty):
		field, reason = "party", "is required"
	case errors.Is(err, ledger.ErrInvalidType):
		field, reason = "type", err.Error()
	case errors.Is(err, ledger.ErrNegativeAmount):
		field, reason = "amount", "must not be negative"
	default:
		return false
	}
	shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: field, Reason: reason}})
	return true
}
