package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/earnly/earnly-task-service/internal/usecase"
)

type AuthHandler struct {
	AuthUsecase usecase.AuthUsecase
	JWTSecret   string
	JWTTTL      time.Duration
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		AuthUsecase: authUsecase,
		JWTSecret:   jwtSecret,
		JWTTTL:      jwtTTL,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		Username   string `json:"username"`
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Username == "" || req.Phone == "" {
		http.Error(w, "Phone, email and username are required", http.StatusBadRequest)
		return
	}

	err := h.AuthUsecase.Signup(r.Context(), &usecase.SignupInput{
		Phone:      req.Phone,
		Email:      req.Email,
		Username:   req.Username,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User created successfully. Check your email for login credentials.",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.AuthUsecase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, middleware.TokenTypeUser, h.JWTSecret, h.JWTTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"user": map[string]string{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"referralCode": user.ReferralCode,
		},
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.AuthUsecase.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If an account with that email exists, we've sent a password reset link.",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.AuthUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully."})
}
