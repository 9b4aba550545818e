package handler

import (
	"net/http"

	"github.com/scholar-notify/internal/application/deliveryrecord"
)

// DeliveryRecordHandler exposes the delivery audit log.
type DeliveryRecordHandler struct {
	svc deliveryrecord.Service
}

func NewDeliveryRecordHandler(svc deliveryrecord.Service) *DeliveryRecordHandler {
	return &DeliveryRecordHandler{svc: svc}
}

func (h *DeliveryRecordHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	records, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
