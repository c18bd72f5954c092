package shared

import (
	"log/slog"
	"net/http"

	"agrobooks/internal/transport/http/api"
)

// ServerError logs err and answers 500 with a stable code. The client never
// sees err itself.
func ServerError(w http.ResponseWriter, requestID, code, message string, err error) {
	slog.Error(message, "code", code, "requestId", requestID, "err", err)
	api.Fail(w, http.StatusInternalServerError, code, message, requestID)
}
