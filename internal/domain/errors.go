package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrNegativeBalance    = errors.New("cannot submit task with negative balance")
	ErrTaskAlreadyDone    = errors.New("product task already completed")
	ErrProductUnavailable = errors.New("product is not available")
	ErrMinimumBalance     = errors.New("minimum balance of $50 required for first task")
	ErrUpgradeRequired    = errors.New("upgrade to premium to continue or withdraw first")
	ErrTaskLimitReached   = errors.New("maximum tasks reached. Please withdraw first")
	ErrInsufficientFunds  = errors.New("insufficient balance for this task")

	ErrUserExists          = errors.New("user already exists")
	ErrAdminExists         = errors.New("admin already exists")
	ErrAdminInactive       = errors.New("admin account is inactive")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDepositNotFound     = errors.New("deposit not found")
)
