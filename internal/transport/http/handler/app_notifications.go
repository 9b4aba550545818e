package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/scholar-notify/internal/application/appnotification"
	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/validate"
)

// maxBatch caps the number of ids accepted by one mark-read call.
const maxBatch = 500

// AppNotificationHandler handles the in-app feed endpoints.
type AppNotificationHandler struct {
	svc appnotification.Service
}

func NewAppNotificationHandler(svc appnotification.Service) *AppNotificationHandler {
	return &AppNotificationHandler{svc: svc}
}

func (h *AppNotificationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AppNotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewAppNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	n, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *AppNotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// MarkMultipleRead takes a JSON array of ids and reports one result per id.
func (h *AppNotificationHandler) MarkMultipleRead(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON array of ids")
		return
	}
	if len(ids) > maxBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "too many ids")
		return
	}
	writeJSON(w, http.StatusOK, MarkReadEnvelope{Results: h.svc.MarkMultipleRead(r.Context(), ids)})
}

func (h *AppNotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userIDParam reads and checks the {userId} path parameter, writing a 400 when it is not a UUID.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "userId")
	u, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId must be a UUID")
		return "", false
	}
	return u.String(), true
}
