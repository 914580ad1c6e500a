package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// writeServiceError маппит ошибки сервиса в http код
func (h *HandlerSubscription) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPlan):
		writeError(w, http.StatusBadRequest, "planType must be monthly or quarterly")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, invalidArgumentMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "subscription not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.log.Error("store unavailable", slog.String("op", op), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load subscription")
	default:
		h.log.Error("unexpected error", slog.String("op", op), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func invalidArgumentMessage(err error) string {
	var argErr *domain.ArgumentError
	if errors.As(err, &argErr) {
		return argErr.Msg
	}
	return "invalid request"
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
