package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apihub/apihub/internal/auth"
	"github.com/apihub/apihub/internal/handler/dto"
	"github.com/apihub/apihub/internal/service"
)

// EntryHandler handles the /api/apis endpoint.
type EntryHandler struct {
	svc    *service.EntryService
	logger *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc *service.EntryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		svc:    svc,
		logger: logger,
	}
}

// Handle dispatches /api/apis by method. The route is registered for all
// verbs behind the auth middleware so that authorization is checked before
// the method branch: an unauthenticated PUT gets 401, an authenticated one
// gets 405.
func (h *EntryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, authCtx.UserID)
	case http.MethodPost:
		h.create(w, r, authCtx.UserID)
	case http.MethodDelete:
		h.delete(w, r, authCtx.UserID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// list handles GET /api/apis.
func (h *EntryHandler) list(w http.ResponseWriter, r *http.Request, userID int64) {
	entries, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.handleEntryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEntryListResponse(entries))
}

// create handles POST /api/apis.
func (h *EntryHandler) create(w http.ResponseWriter, r *http.Request, userID int64) {
	var req dto.CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name and url must not be empty")
		return
	}

	entry, err := h.svc.Add(r.Context(), userID, req.Name, req.URL)
	if err != nil {
		h.handleEntryError(w, err)
		return
	}

	h.logger.Info("entry_created",
		"entry_id", entry.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// delete handles DELETE /api/apis?id=<id>.
func (h *EntryHandler) delete(w http.ResponseWriter, r *http.Request, userID int64) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "missing entry id")
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.svc.Remove(r.Context(), userID, id); err != nil {
		h.handleEntryError(w, err)
		return
	}

	h.logger.Info("entry_deleted",
		"entry_id", id,
		"user_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// handleEntryError maps entry service errors to HTTP responses.
func (h *EntryHandler) handleEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "name must not be empty")
	case errors.Is(err, service.ErrEmptyURL):
		writeError(w, http.StatusBadRequest, "url must not be empty")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
