package kafka

import "time"

type TaskSubmittedEvent struct {
	SubmissionID  string    `json:"submission_id"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	ProfitEarned  string    `json:"profit_earned"`
	AmountDebited string    `json:"amount_debited"`
	ReferralCount int       `json:"referral_count"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type DepositEvent struct {
	DepositID string `json:"deposit_id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
}

type WithdrawalEvent struct {
	WithdrawalID string `json:"withdrawal_id"`
	UserID       string `json:"user_id"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
}
