package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/earnly/earnly-task-service/internal/domain"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrDepositNotFound, http.StatusNotFound},
		{domain.ErrTaskAlreadyDone, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrAdminExists, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAdminInactive, http.StatusUnauthorized},
		{domain.ErrWrongPassword, http.StatusBadRequest},
		{domain.ErrInvalidResetToken, http.StatusBadRequest},
		{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{domain.ErrInsufficientBalance, http.StatusPaymentRequired},
		{domain.ErrNegativeBalance, http.StatusUnprocessableEntity},
		{domain.ErrProductUnavailable, http.StatusUnprocessableEntity},
		{domain.ErrMinimumBalance, http.StatusUnprocessableEntity},
		{domain.ErrUpgradeRequired, http.StatusUnprocessableEntity},
		{domain.ErrTaskLimitReached, http.StatusUnprocessableEntity},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
			// Internal details never leak to clients.
			if tt.wantStatus == http.StatusInternalServerError && body.Error != "internal server error" {
				t.Errorf("body = %q, want generic message", body.Error)
			}
		})
	}
}
