package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apihub/apihub/internal/handler/dto"
	"github.com/apihub/apihub/internal/service"
)

// FeedHandler serves the public aggregation document.
type FeedHandler struct {
	svc    *service.EntryService
	logger *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.EntryService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		svc:    svc,
		logger: logger,
	}
}

// Render handles GET /api/json?user=<id>.
//
// The user id is a plain public parameter, not a credential: any caller can
// read any user's feed. That is the intended aggregation contract, kept
// distinct from /api/apis which always scopes to the authenticated caller.
func (h *FeedHandler) Render(w http.ResponseWriter, r *http.Request) {
	userStr := r.URL.Query().Get("user")
	if userStr == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	userID, err := strconv.ParseInt(userStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	entries, err := h.svc.Feed(r.Context(), userID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFeedResponse(entries))
}
