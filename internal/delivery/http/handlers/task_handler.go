package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/usecase"
)

type TaskHandler struct {
	TaskUsecase usecase.TaskUsecase
}

func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{TaskUsecase: taskUsecase}
}

type submissionResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	ProductID     string           `json:"productId"`
	ProfitEarned  string           `json:"profitEarned"`
	AmountDebited string           `json:"amountDebited"`
	CreatedAt     time.Time        `json:"createdAt"`
	Product       *productResponse `json:"product,omitempty"`
}

func toSubmissionResponse(submission *domain.TaskSubmission) *submissionResponse {
	resp := &submissionResponse{
		ID:            submission.ID,
		UserID:        submission.UserID,
		ProductID:     submission.ProductID,
		ProfitEarned:  submission.ProfitEarned.String(),
		AmountDebited: submission.AmountDebited.String(),
		CreatedAt:     submission.CreatedAt,
	}
	if submission.Product != nil {
		resp.Product = toProductResponse(submission.Product)
	}
	return resp
}

func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	submission, err := h.TaskUsecase.SubmitTask(r.Context(), userID, req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(submission))
}

func (h *TaskHandler) GetUserTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	submissions, err := h.TaskUsecase.GetUserTasks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*submissionResponse, len(submissions))
	for i, submission := range submissions {
		resp[i] = toSubmissionResponse(submission)
	}
	writeJSON(w, http.StatusOK, resp)
}
