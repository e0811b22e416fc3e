package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
)

func validTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

var validStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"completed": true,
	"cancelled": true,
}

const slotTakenMsg = "this time slot is already booked, please choose another time"

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID       string `json:"service_id"`
		AppointmentDate string `json:"appointment_date"`
		AppointmentTime string `json:"appointment_time"`
		Notes           string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ServiceID == "" || req.AppointmentDate == "" || req.AppointmentTime == "" {
		writeError(w, http.StatusBadRequest, "service, date, and time are required")
		return
	}
	if !validDate(req.AppointmentDate) || !validTime(req.AppointmentTime) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD and time must be HH:MM")
		return
	}
	if _, err := uuid.Parse(req.ServiceID); err != nil {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}

	if _, err := h.store.GetService(r.Context(), req.ServiceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		internalError(w, "service lookup", err)
		return
	}

	taken, err := h.store.SlotTaken(r.Context(), req.AppointmentDate, req.AppointmentTime, "")
	if err != nil {
		internalError(w, "slot check", err)
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, slotTakenMsg)
		return
	}

	a := &model.Appointment{
		ID:              uuid.New().String(),
		UserID:          middleware.Claims(r.Context()).UserID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	}
	if err := h.store.CreateAppointment(r.Context(), a); err != nil {
		// partial unique index caught a race on the slot
		if uniqueViolation(err) {
			writeError(w, http.StatusBadRequest, slotTakenMsg)
			return
		}
		internalError(w, "create appointment", err)
		return
	}

	detail, err := h.store.GetDetail(r.Context(), a.ID)
	if err != nil {
		internalError(w, "appointment detail", err)
		return
	}

	writeJSON(w, http.StatusCreated, ok(map[string]any{
		"message":     "appointment booked successfully",
		"appointment": detail,
	}))
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	claims := middleware.Claims(r.Context())

	apts, err := h.store.ListByUser(r.Context(), claims.UserID, status)
	if err != nil {
		internalError(w, "list appointments", err)
		return
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"appointments": apts}))
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	claims := middleware.Claims(r.Context())
	a, err := h.store.GetOwned(r.Context(), id, claims.UserID)
	if err != nil {
		// missing and not-owned look the same to the caller
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		internalError(w, "get appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"appointment": a}))
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	var req struct {
		AppointmentDate *string `json:"appointment_date"`
		AppointmentTime *string `json:"appointment_time"`
		Notes           *string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AppointmentDate != nil && !validDate(*req.AppointmentDate) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.AppointmentTime != nil && !validTime(*req.AppointmentTime) {
		writeError(w, http.StatusBadRequest, "time must be HH:MM")
		return
	}

	claims := middleware.Claims(r.Context())
	current, err := h.store.GetOwned(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		internalError(w, "update lookup", err)
		return
	}
	if current.Status == "completed" || current.Status == "cancelled" {
		writeError(w, http.StatusBadRequest, "cannot update completed or cancelled appointments")
		return
	}

	// pre-check the target slot when the appointment is being moved
	date, tm := current.AppointmentDate, current.AppointmentTime
	if req.AppointmentDate != nil {
		date = *req.AppointmentDate
	}
	if req.AppointmentTime != nil {
		tm = *req.AppointmentTime
	}
	if date != current.AppointmentDate || tm != current.AppointmentTime {
		taken, err := h.store.SlotTaken(r.Context(), date, tm, id)
		if err != nil {
			internalError(w, "slot check", err)
			return
		}
		if taken {
			writeError(w, http.StatusBadRequest, slotTakenMsg)
			return
		}
	}

	a, err := h.store.UpdateOwned(r.Context(), id, claims.UserID,
		req.AppointmentDate, req.AppointmentTime, req.Notes)
	if err != nil {
		if uniqueViolation(err) {
			writeError(w, http.StatusBadRequest, slotTakenMsg)
			return
		}
		internalError(w, "update appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message":     "appointment updated successfully",
		"appointment": a,
	}))
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	// body is optional on cancel
	var req struct {
		CancellationReason string `json:"cancellation_reason"`
	}
	_ = decode(r, &req)

	claims := middleware.Claims(r.Context())
	a, err := h.store.CancelOwned(r.Context(), id, claims.UserID, req.CancellationReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		internalError(w, "cancel appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message":     "appointment cancelled successfully",
		"appointment": a,
	}))
}

func (h *Handler) AdminAllAppointments(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	apts, err := h.store.AdminUpcoming(r.Context(), qs.Get("status"), qs.Get("date"))
	if err != nil {
		internalError(w, "admin list appointments", err)
		return
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"appointments": apts}))
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	found, err := h.store.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if uniqueViolation(err) {
			// re-activating a cancelled booking whose slot was re-taken
			writeError(w, http.StatusBadRequest, slotTakenMsg)
			return
		}
		internalError(w, "update status", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	detail, err := h.store.GetDetail(r.Context(), id)
	if err != nil {
		internalError(w, "appointment detail", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message":     "appointment status updated",
		"appointment": detail,
	}))
}
