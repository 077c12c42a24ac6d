package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/usecase"
	"github.com/shopspring/decimal"
)

type UserHandler struct {
	UserUsecase usecase.UserUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase}
}

type userResponse struct {
	ID             string    `json:"id"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Country        string    `json:"country"`
	ProfilePicture string    `json:"profilePicture"`
	WalletAddress  string    `json:"walletAddress"`
	WalletNetwork  string    `json:"walletNetwork"`
	Balance        string    `json:"balance"`
	Level          int       `json:"level"`
	CompletedTasks int       `json:"completedTasks"`
	ReferralCode   string    `json:"referralCode"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserResponse(user *domain.User) *userResponse {
	return &userResponse{
		ID:             user.ID,
		Phone:          user.Phone,
		Email:          user.Email,
		Username:       user.Username,
		Name:           user.Name,
		Country:        user.Country,
		ProfilePicture: user.ProfilePicture,
		WalletAddress:  user.WalletAddress,
		WalletNetwork:  user.WalletNetwork,
		Balance:        user.Balance.String(),
		Level:          user.Level,
		CompletedTasks: user.CompletedTasks,
		ReferralCode:   user.ReferralCode,
		CreatedAt:      user.CreatedAt,
	}
}

type fundingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Network       string    `json:"network"`
	WalletAddress string    `json:"walletAddress"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toDepositResponse(deposit *domain.Deposit) *fundingResponse {
	return &fundingResponse{
		ID:            deposit.ID,
		UserID:        deposit.UserID,
		Network:       deposit.Network,
		WalletAddress: deposit.WalletAddress,
		Amount:        deposit.Amount.String(),
		Status:        string(deposit.Status),
		CreatedAt:     deposit.CreatedAt,
	}
}

func toWithdrawalResponse(withdrawal *domain.Withdrawal) *fundingResponse {
	return &fundingResponse{
		ID:            withdrawal.ID,
		UserID:        withdrawal.UserID,
		Network:       withdrawal.Network,
		WalletAddress: withdrawal.WalletAddress,
		Amount:        withdrawal.Amount.String(),
		Status:        string(withdrawal.Status),
		CreatedAt:     withdrawal.CreatedAt,
	}
}

type userDetailsResponse struct {
	User        *userResponse      `json:"user"`
	Deposits    []*fundingResponse `json:"deposits"`
	Withdrawals []*fundingResponse `json:"withdrawals"`
}

func toUserDetailsResponse(details *usecase.UserDetails) *userDetailsResponse {
	resp := &userDetailsResponse{
		User:        toUserResponse(details.User),
		Deposits:    make([]*fundingResponse, len(details.Deposits)),
		Withdrawals: make([]*fundingResponse, len(details.Withdrawals)),
	}
	for i, deposit := range details.Deposits {
		resp.Deposits[i] = toDepositResponse(deposit)
	}
	for i, withdrawal := range details.Withdrawals {
		resp.Withdrawals[i] = toWithdrawalResponse(withdrawal)
	}
	return resp
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	details, err := h.UserUsecase.GetUserDetails(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDetailsResponse(details))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name            *string `json:"name"`
		Phone           *string `json:"phone"`
		Email           *string `json:"email"`
		Country         *string `json:"country"`
		ProfilePicture  *string `json:"profilePicture"`
		WalletAddress   *string `json:"walletAddress"`
		WalletNetwork   *string `json:"walletNetwork"`
		CurrentPassword *string `json:"currentPassword"`
		NewPassword     *string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	user, err := h.UserUsecase.UpdateProfile(r.Context(), userID, &usecase.UpdateProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Country:         req.Country,
		ProfilePicture:  req.ProfilePicture,
		WalletAddress:   req.WalletAddress,
		WalletNetwork:   req.WalletNetwork,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type fundingRequest struct {
	Network       string          `json:"network"`
	WalletAddress string          `json:"walletAddress"`
	Amount        decimal.Decimal `json:"amount"`
}

func (req *fundingRequest) validate() bool {
	return req.Network != "" && req.WalletAddress != "" && req.Amount.IsPositive()
}

func (h *UserHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req fundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.validate() {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	deposit, err := h.UserUsecase.CreateDeposit(r.Context(), userID, &usecase.FundingInput{
		Network:       req.Network,
		WalletAddress: req.WalletAddress,
		Amount:        req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDepositResponse(deposit))
}

func (h *UserHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req fundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.validate() {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	withdrawal, err := h.UserUsecase.CreateWithdrawal(r.Context(), userID, &usecase.FundingInput{
		Network:       req.Network,
		WalletAddress: req.WalletAddress,
		Amount:        req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWithdrawalResponse(withdrawal))
}
