package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/earnly/earnly-task-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("failed to encode response", "error", err.Error())
		}
	}
}

// writeError maps domain sentinels to stable status codes and messages so
// client UIs can branch on the failure reason.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrDepositNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrTaskAlreadyDone),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrAdminExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAdminInactive):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrInvalidResetToken):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
		message = err.Error()
	case errors.Is(err, domain.ErrNegativeBalance),
		errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrMinimumBalance),
		errors.Is(err, domain.ErrUpgradeRequired),
		errors.Is(err, domain.ErrTaskLimitReached):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	default:
		slog.Error("request failed", "error", err.Error())
	}

	writeJSON(w, status, errorResponse{Error: message})
}
