package tradehandler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/audit"
	"agrobooks/internal/domain/trade"
	"agrobooks/internal/transport/http/api"
	"agrobooks/internal/transport/http/middleware"
	"agrobooks/internal/transport/http/shared"
)

type Handler struct {
	Service     *trade.Service
	Audit       *audit.Service
	OverdueDays int
}

func NewHandler(service *trade.Service, auditSvc *audit.Service, overdueDays int) *Handler {
	return &Handler{Service: service, Audit: auditSvc, OverdueDays: overdueDays}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/bills/quote", h.handleQuote)
	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.handleListSales)
		r.Post("/", h.handleCreateSale)
		r.Get("/{saleID}/invoice", h.handleInvoice)
	})
	r.Route("/purchases", func(r chi.Router) {
		r.Get("/", h.handleListPurchases)
		r.Post("/", h.handleCreatePurchase)
	})
	r.Get("/overdue", h.handleOverdue)
	r.Get("/stocks", h.handleStock)
	r.Get("/suppliers", h.handleSuppliers)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload trade.BillForm
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	api.Success(w, h.Service.Quote(payload.Input()), reqID)
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sales, err := h.Service.Sales(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "sales_failed", "failed to list sales", err)
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	items, total := shared.Slice(sales, page)
	api.Page(w, items, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

func (h *Handler) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload trade.SaleForm
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}

	validator := shared.NewValidator()
	validator.Struct(payload)
	if strings.TrimSpace(payload.Date) != "" {
		validator.Date("date", payload.Date)
	}
	if len(payload.Items) == 0 {
		validator.Add("items", "at least one item is required")
	}
	if validator.Reject(w, reqID) {
		return
	}

	sale, err := h.Service.CreateSale(r.Context(), payload.Header(), payload.Input())
	if err != nil {
		if billRejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "sale_create_failed", "failed to create sale", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionSaleCreate, "sale", sale.ID, reqID, shared.ClientIP(r), sale)
	api.Created(w, sale, reqID)
}

func (h *Handler) handleInvoice(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	invoice, err := h.Service.Invoice(r.Context(), chi.URLParam(r, "saleID"))
	if err != nil {
		if errors.Is(err, trade.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "sale not found", reqID)
			return
		}
		shared.ServerError(w, reqID, "invoice_failed", "failed to build invoice", err)
		return
	}
	api.Success(w, invoice, reqID)
}

func (h *Handler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	purchases, err := h.Service.Purchases(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "purchases_failed", "failed to list purchases", err)
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	items, total := shared.Slice(purchases, page)
	api.Page(w, items, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

func (h *Handler) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload trade.PurchaseForm
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}

	validator := shared.NewValidator()
	validator.Struct(payload)
	if strings.TrimSpace(payload.Date) != "" {
		validator.Date("date", payload.Date)
	}
	if validator.Reject(w, reqID) {
		return
	}

	purchase, err := h.Service.CreatePurchase(r.Context(), payload.Header(), payload.Input())
	if err != nil {
		if billRejected(w, reqID, err) {
			return
		}
		shared.ServerError(w, reqID, "purchase_create_failed", "failed to create purchase", err)
		return
	}
	h.Audit.Record(r.Context(), audit.ActionPurchaseCreate, "purchase", purchase.ID, reqID, shared.ClientIP(r), purchase)
	api.Created(w, purchase, reqID)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	days := h.OverdueDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "days", Reason: "must be a whole number of days"}})
			return
		}
		days = parsed
	}
	report, err := h.Service.Overdue(r.Context(), days)
	if err != nil {
		shared.ServerError(w, reqID, "overdue_failed", "failed to build overdue report", err)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleStock(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	report, err := h.Service.Stock(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "stock_failed", "failed to build stock report", err)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	suppliers, err := h.Service.Suppliers(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "suppliers_failed", "failed to list suppliers", err)
		return
	}
	if search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search"))); search != "" {
		filtered := []trade.SupplierBalance{}
		for _, sb := range suppliers {
			if strings.Contains(strings.ToLower(sb.Name), search) || strings.Contains(sb.Mobile, search) {
				filtered = append(filtered, sb)
			}
		}
		suppliers = filtered
	}
	page := shared.ParsePagination(r, 100, 500)
	items, total := shared.Slice(suppliers, page)
	api.Page(w, items, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

// billRejected maps the service's validation errors onto field issues.
func billRejected(w http.ResponseWriter, reqID string, err error) bool {
	var field, reason string
	switch {
	case errors.Is(err, trade.ErrMissingDate):
		field, reason = "date", "is required"
	case errors.Is(err, trade.ErrNoItems):
		field, reason = "items", "at least one item is required"
	case errors.Is(err, trade.ErrNegativeAmount):
		field, reason = "amounts", "must not be negative"
	default:
		return false
	}
	shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: field, Reason: reason}})
	return true
}
