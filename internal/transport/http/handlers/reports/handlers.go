package reportshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/reports"
	"agrobooks/internal/platform/jobs"
	"agrobooks/internal/transport/http/api"
	"agrobooks/internal/transport/http/middleware"
	"agrobooks/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Jobs    *jobs.Service
}

func NewHandler(service *reports.Service, jobsSvc *jobs.Service) *Handler {
	return &Handler{Service: service, Jobs: jobsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/profit-loss", h.handleProfitLoss)
		r.Get("/jobs", h.handleJobRuns)
	})
	r.Post("/jobs/overdue-scan", h.handleOverdueScan)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "summary_failed", "failed to build financial summary", err)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleProfitLoss(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	report, err := h.Service.ProfitLoss(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "profit_loss_failed", "failed to build profit and loss", err)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	validator := shared.NewValidator()
	status := strings.ToLower(strings.TrimSpace(query.Get("status")))
	validator.Enum("status", status, []string{jobs.StatusRunning, jobs.StatusCompleted, jobs.StatusFailed}, "must be running, completed or failed")
	from := validator.OptionalDate("startedFrom", query.Get("startedFrom"))
	to := validator.OptionalDate("startedTo", query.Get("startedTo"))
	validator.DateOrder("startedFrom", from, "startedTo", to)
	if validator.Reject(w, reqID) {
		return
	}

	filter := reports.JobRunFilter{
		JobType: strings.TrimSpace(query.Get("jobType")),
		Status:  status,
	}
	if !from.IsZero() {
		filter.StartedFrom = &from
	}
	if !to.IsZero() {
		filter.StartedTo = &to
	}

	page := shared.ParsePagination(r, 50, 200)
	runs, total, err := h.Service.JobRuns(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		shared.ServerError(w, reqID, "job_runs_failed", "failed to list job runs", err)
		return
	}
	api.Page(w, runs, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

func (h *Handler) handleOverdueScan(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	report, err := h.Jobs.ScanOverdue(r.Context())
	if err != nil {
		shared.ServerError(w, reqID, "overdue_scan_failed", "overdue scan failed", err)
		return
	}
	api.Success(w, report, reqID)
}
