package mappers

import (
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
)

func ToGORMUser(user *domain.User) *models.UserModel {
	return &models.UserModel{
		ID:             user.ID,
		Phone:          user.Phone,
		Email:          user.Email,
		Username:       user.Username,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		Country:        user.Country,
		ProfilePicture: user.ProfilePicture,
		WalletAddress:  user.WalletAddress,
		WalletNetwork:  user.WalletNetwork,
		Balance:        user.Balance,
		Level:          user.Level,
		CompletedTasks: user.CompletedTasks,
		ReferralCode:   user.ReferralCode,
		InviteCode:     user.InviteCode,
		ReferredByID:   user.ReferredByID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:             model.ID,
		Phone:          model.Phone,
		Email:          model.Email,
		Username:       model.Username,
		Name:           model.Name,
		PasswordHash:   model.PasswordHash,
		Country:        model.Country,
		ProfilePicture: model.ProfilePicture,
		WalletAddress:  model.WalletAddress,
		WalletNetwork:  model.WalletNetwork,
		Balance:        model.Balance,
		Level:          model.Level,
		CompletedTasks: model.CompletedTasks,
		ReferralCode:   model.ReferralCode,
		InviteCode:     model.InviteCode,
		ReferredByID:   model.ReferredByID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
