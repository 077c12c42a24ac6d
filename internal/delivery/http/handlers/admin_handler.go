package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/earnly/earnly-task-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	AdminUsecase usecase.AdminUsecase
	JWTSecret    string
	JWTTTL       time.Duration
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, jwtSecret string, jwtTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		AdminUsecase: adminUsecase,
		JWTSecret:    jwtSecret,
		JWTTTL:       jwtTTL,
	}
}

func (h *AdminHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		http.Error(w, "Email, username and password are required", http.StatusBadRequest)
		return
	}

	admin, err := h.AdminUsecase.AdminSignup(r.Context(), &usecase.AdminSignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       admin.ID,
		"username": admin.Username,
		"email":    admin.Email,
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	admin, err := h.AdminUsecase.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := middleware.GenerateToken(admin.ID, admin.Username, middleware.TokenTypeAdmin, h.JWTSecret, h.JWTTTL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"admin": map[string]string{
			"id":       admin.ID,
			"username": admin.Username,
			"name":     admin.Name,
		},
	})
}

func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminUsecase.GetDashboardStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalUsers":         stats.TotalUsers,
		"totalSubmissions":   stats.TotalSubmissions,
		"todaysTransactions": stats.TodaysTransactions,
		"pendingPayout":      stats.PendingPayout.String(),
	})
}

func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminUsecase.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*userResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	details, err := h.AdminUsecase.GetUserDetails(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDetailsResponse(details))
}

func (h *AdminHandler) SetUserBalance(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID := chi.URLParam(r, "userID")

	var req struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	user, err := h.AdminUsecase.SetUserBalance(r.Context(), adminID, userID, req.Balance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AdminHandler) SetUserNegativeOverrides(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID := chi.URLParam(r, "userID")

	var req struct {
		ProductIDs     []string        `json:"productIds"`
		NegativeAmount decimal.Decimal `json:"negativeAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ProductIDs) == 0 {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.AdminUsecase.SetUserNegativeOverrides(r.Context(), adminID, userID, req.ProductIDs, req.NegativeAmount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Overrides applied."})
}

func (h *AdminHandler) GetUserDeposits(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	deposits, err := h.AdminUsecase.GetUserDeposits(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*fundingResponse, len(deposits))
	for i, deposit := range deposits {
		resp[i] = toDepositResponse(deposit)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	depositID := chi.URLParam(r, "depositID")

	deposit, err := h.AdminUsecase.ApproveDeposit(r.Context(), adminID, depositID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(deposit))
}

func (h *AdminHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	depositID := chi.URLParam(r, "depositID")

	deposit, err := h.AdminUsecase.RejectDeposit(r.Context(), adminID, depositID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(deposit))
}

func (h *AdminHandler) UpdateUserWallet(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID := chi.URLParam(r, "userID")

	var req struct {
		WalletAddress string `json:"walletAddress"`
		WalletNetwork string `json:"walletNetwork"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WalletAddress == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.AdminUsecase.UpdateUserWallet(r.Context(), adminID, userID, req.WalletAddress, req.WalletNetwork); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Wallet updated."})
}

// ResetUserTasks wipes the user's submission history and completed count so
// they can run the task cycle again. Bonuses and balance are left untouched.
func (h *AdminHandler) ResetUserTasks(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID := chi.URLParam(r, "userID")

	if err := h.AdminUsecase.ResetUserTasks(r.Context(), adminID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tasks reset."})
}
