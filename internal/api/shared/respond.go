// Package shared holds the request binding and response normalization
// used by every handler: the single seam between transport concerns and
// the domain modules.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
)

// Respond is the response normalizer for successful outcomes: a nil
// result becomes 200 with an empty body, anything else is serialized as
// JSON with status 200. Handlers never pick status codes themselves.
func Respond(w http.ResponseWriter, r *http.Request, result any) {
	if result == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// RespondError is the response normalizer for failures: the error is
// coerced into the domain taxonomy (unknown errors become a generic
// Internal) and written as {name, message} with the taxonomy status.
// This is the only place domain outcomes turn into status codes.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	domainErr := domain.AsError(err)

	logLevel := slog.LevelDebug
	if domainErr.Status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	log.LogAttrs(r.Context(), logLevel, "request failed",
		slog.Int("status", domainErr.Status),
		slog.String("name", domainErr.Name),
		slog.String("message", domainErr.Message),
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	)

	writeJSON(w, r, domainErr.Status, domainErr)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), nil).
			Error("failed to encode JSON response", "error", err)
	}
}
