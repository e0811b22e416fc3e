package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now, err := h.store.Ping(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "database not reachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "time": now})
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	if err := h.store.CreateInquiry(r.Context(), req.Name, req.Email, req.Message); err != nil {
		internalError(w, "create inquiry", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"message": "inquiry saved successfully"}))
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		internalError(w, "list services", err)
		return
	}
	if services == nil {
		services = []model.Service{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"services": services}))
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}

	sv, err := h.store.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		internalError(w, "get service", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"service": sv}))
}
