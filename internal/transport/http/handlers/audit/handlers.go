package audithandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/audit"
	"agrobooks/internal/transport/http/api"
	"agrobooks/internal/transport/http/middleware"
	"agrobooks/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/events", h.handleListEvents)
		r.Get("/events/export", h.handleExportEvents)
	})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 100, 500)
	query := r.URL.Query()
	filter := audit.Filter{Action: query.Get("action"), EntityType: query.Get("entityType")}
	includeDetails := query.Get("includeDetails") == "true"

	events, total, err := h.Service.Events(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		shared.ServerError(w, reqID, "audit_list_failed", "failed to list audit events", err)
		return
	}
	api.Page(w, events, api.Meta{Total: total, Limit: page.Limit, Offset: page.Offset}, reqID)
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.Export(r.Context())
	if err != nil {
		shared.ServerError(w, middleware.GetRequestID(r.Context()), "audit_export_failed", "failed to export audit events", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		slog.Warn("audit export header failed", "err", err)
	}
	for _, evt := range events {
		if err := writer.Write([]string{evt.ID, evt.Action, evt.EntityType, evt.EntityID, evt.RequestID, evt.IP, evt.CreatedAt.Format(time.RFC3339)}); err != nil {
			slog.Warn("audit export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("audit export flush failed", "err", err)
	}
}
