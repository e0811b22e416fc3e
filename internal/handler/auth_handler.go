package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
)

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName    string `json:"full_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Password    string `json:"password"`
		DateOfBirth string `json:"date_of_birth"`
		Gender      string `json:"gender"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "please provide name, email, and password")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.DateOfBirth != "" && !validDate(req.DateOfBirth) {
		writeError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	if _, err := h.store.UserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		internalError(w, "register lookup", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(w, "hash password", err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Role:         "client",
		IsActive:     true,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique constraint caught a concurrent registration
		if uniqueViolation(err) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		internalError(w, "create user", err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Email, u.Role, h.secret)
	if err != nil {
		internalError(w, "make token", err)
		return
	}

	writeJSON(w, http.StatusCreated, ok(map[string]any{
		"message": "registration successful",
		"token":   tok,
		"user":    u,
	}))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "please provide email and password")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		internalError(w, "login lookup", err)
		return
	}
	if !u.IsActive {
		writeError(w, http.StatusForbidden, "account is deactivated, please contact support")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Email, u.Role, h.secret)
	if err != nil {
		internalError(w, "make token", err)
		return
	}

	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message": "login successful",
		"token":   tok,
		"user":    u,
	}))
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	u, err := h.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		internalError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"user": u}))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName    *string `json:"full_name"`
		Phone       *string `json:"phone"`
		DateOfBirth *string `json:"date_of_birth"`
		Gender      *string `json:"gender"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DateOfBirth != nil && !validDate(*req.DateOfBirth) {
		writeError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	claims := middleware.Claims(r.Context())
	u, err := h.store.UpdateProfile(r.Context(), claims.UserID,
		req.FullName, req.Phone, req.DateOfBirth, req.Gender)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		internalError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message": "profile updated successfully",
		"user":    u,
	}))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "current and new password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	claims := middleware.Claims(r.Context())
	u, err := h.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		internalError(w, "change password lookup", err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		internalError(w, "hash password", err)
		return
	}
	if _, err := h.store.UpdatePassword(r.Context(), u.ID, hash); err != nil {
		internalError(w, "update password", err)
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"message": "password changed successfully"}))
}

// ForgotPassword answers identically whether or not the account exists.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{
		"message": "if that account exists, password reset instructions have been sent",
	}))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"user_id"`
		NewPassword string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "user_id and new_password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		internalError(w, "hash password", err)
		return
	}
	found, err := h.store.UpdatePassword(r.Context(), req.UserID, hash)
	if err != nil {
		internalError(w, "reset password", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, ok(map[string]any{"message": "password reset successfully"}))
}
