package mappers

import (
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
)

func ToGORMDeposit(deposit *domain.Deposit) *models.DepositModel {
	return &models.DepositModel{
		ID:            deposit.ID,
		UserID:        deposit.UserID,
		Network:       deposit.Network,
		WalletAddress: deposit.WalletAddress,
		Amount:        deposit.Amount,
		Status:        string(deposit.Status),
		CreatedAt:     deposit.CreatedAt,
		UpdatedAt:     deposit.UpdatedAt,
	}
}

func ToDomainDeposit(model *models.DepositModel) *domain.Deposit {
	return &domain.Deposit{
		ID:            model.ID,
		UserID:        model.UserID,
		Network:       model.Network,
		WalletAddress: model.WalletAddress,
		Amount:        model.Amount,
		Status:        domain.FundingStatus(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMWithdrawal(withdrawal *domain.Withdrawal) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:            withdrawal.ID,
		UserID:        withdrawal.UserID,
		Network:       withdrawal.Network,
		WalletAddress: withdrawal.WalletAddress,
		Amount:        withdrawal.Amount,
		Status:        string(withdrawal.Status),
		CreatedAt:     withdrawal.CreatedAt,
		UpdatedAt:     withdrawal.UpdatedAt,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:            model.ID,
		UserID:        model.UserID,
		Network:       model.Network,
		WalletAddress: model.WalletAddress,
		Amount:        model.Amount,
		Status:        domain.FundingStatus(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMAdmin(admin *domain.Admin) *models.AdminModel {
	return &models.AdminModel{
		ID:           admin.ID,
		Email:        admin.Email,
		Username:     admin.Username,
		Name:         admin.Name,
		PasswordHash: admin.PasswordHash,
		IsActive:     admin.IsActive,
		CreatedAt:    admin.CreatedAt,
	}
}

func ToDomainAdmin(model *models.AdminModel) *domain.Admin {
	return &domain.Admin{
		ID:           model.ID,
		Email:        model.Email,
		Username:     model.Username,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
	}
}

func ToDomainPasswordReset(model *models.PasswordResetModel) *domain.PasswordReset {
	return &domain.PasswordReset{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		Used:      model.Used,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}
}
