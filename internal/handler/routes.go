package handler

import (
	"net/http"

	"clinic-booking-api/internal/middleware"
)

// Routes wires every endpoint. The rate limiter only guards the credential
// endpoints; everything else relies on the auth middleware alone.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	authed := middleware.RequireAuth(h.secret)
	admin := middleware.RequireAdmin(h.secret)
	limited := middleware.RateLimit(rl)

	mux := http.NewServeMux()

	// public
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", h.Contact)
	mux.HandleFunc("GET /api/services", h.ListServices)
	mux.HandleFunc("GET /api/services/{id}", h.GetService)

	// auth
	mux.HandleFunc("POST /api/auth/register", limited(h.Register))
	mux.HandleFunc("POST /api/auth/login", limited(h.Login))
	mux.HandleFunc("GET /api/auth/profile", authed(h.Profile))
	mux.HandleFunc("PUT /api/auth/profile", authed(h.UpdateProfile))
	mux.HandleFunc("POST /api/auth/change-password", authed(h.ChangePassword))
	mux.HandleFunc("POST /api/auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /api/auth/admin/reset-password", admin(h.ResetPassword))

	// appointments
	mux.HandleFunc("POST /api/appointments", authed(h.CreateAppointment))
	mux.HandleFunc("GET /api/appointments", authed(h.ListAppointments))
	mux.HandleFunc("GET /api/appointments/admin/all", admin(h.AdminAllAppointments))
	mux.HandleFunc("GET /api/appointments/{id}", authed(h.GetAppointment))
	mux.HandleFunc("PUT /api/appointments/{id}", authed(h.UpdateAppointment))
	mux.HandleFunc("DELETE /api/appointments/{id}", authed(h.CancelAppointment))
	mux.HandleFunc("PATCH /api/appointments/{id}/status", admin(h.UpdateAppointmentStatus))

	// admin
	mux.HandleFunc("GET /api/admin/stats", admin(h.Stats))
	mux.HandleFunc("GET /api/admin/appointments", admin(h.AdminAppointments))
	mux.HandleFunc("GET /api/admin/clients", admin(h.ListClients))
	mux.HandleFunc("GET /api/admin/clients/{id}", admin(h.GetClient))
	mux.HandleFunc("GET /api/admin/inquiries", admin(h.ListInquiries))
	mux.HandleFunc("PATCH /api/admin/inquiries/{id}", admin(h.UpdateInquiryStatus))

	return mux
}
