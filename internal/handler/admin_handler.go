package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Stats(r.Context())
	if err != nil {
		internalError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"stats": st}))
}

func (h *Handler) AdminAppointments(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	f := store.AppointmentFilter{
		Status:    qs.Get("status"),
		Date:      qs.Get("date"),
		ServiceID: qs.Get("service_id"),
		Search:    qs.Get("search"),
	}
	apts, err := h.store.AdminList(r.Context(), f)
	if err != nil {
		internalError(w, "admin appointments", err)
		return
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"appointments": apts,
		"total":        len(apts),
	}))
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.store.ListClients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		internalError(w, "list clients", err)
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"clients": clients,
		"total":   len(clients),
	}))
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}

	client, err := h.store.ClientByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		internalError(w, "get client", err)
		return
	}

	history, err := h.store.HistoryForUser(r.Context(), id)
	if err != nil {
		internalError(w, "client history", err)
		return
	}
	if history == nil {
		history = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"client":       client,
		"appointments": history,
	}))
}

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.store.ListInquiries(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		internalError(w, "list inquiries", err)
		return
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"inquiries": inquiries,
		"total":     len(inquiries),
	}))
}

var validInquiryStatuses = map[string]bool{
	"new":     true,
	"replied": true,
	"closed":  true,
}

func (h *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "inquiry not found")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validInquiryStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	in, err := h.store.UpdateInquiryStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "inquiry not found")
			return
		}
		internalError(w, "update inquiry", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message": "inquiry status updated",
		"inquiry": in,
	}))
}
