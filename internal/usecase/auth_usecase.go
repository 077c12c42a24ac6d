package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"golang.org/x/crypto/bcrypt"
)

const (
	referralCodeLength  = 7
	referralCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	passwordLength  = 8
	passwordCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	resetTokenTTL = time.Hour
)

type SignupInput struct {
	Phone      string
	Email      string
	Username   string
	InviteCode string
}

type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) error
	Login(ctx context.Context, username, password string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type DefaultAuthUsecase struct {
	UserRepo  domain.UserRepository
	ResetRepo domain.PasswordResetRepository
	TxManager domain.TxManager
	Mailer    domain.Mailer

	newReferralCode func() string
}

func NewDefaultAuthUsecase(
	userRepo domain.UserRepository,
	resetRepo domain.PasswordResetRepository,
	txManager domain.TxManager,
	mailer domain.Mailer) (*DefaultAuthUsecase, error) {

	codeGen, err := nanoid.CustomASCII(referralCodeCharset, referralCodeLength)
	if err != nil {
		return nil, fmt.Errorf("init referral code generator: %w", err)
	}

	return &DefaultAuthUsecase{
		UserRepo:        userRepo,
		ResetRepo:       resetRepo,
		TxManager:       txManager,
		Mailer:          mailer,
		newReferralCode: codeGen,
	}, nil
}

func (uc *DefaultAuthUsecase) Signup(ctx context.Context, input *SignupInput) error {
	if err := uc.checkNotTaken(ctx, input.Email, input.Username); err != nil {
		return err
	}

	// An invite code that doesn't resolve to a referrer is kept on the row
	// but establishes no referral link.
	var referredByID *string
	if input.InviteCode != "" {
		referrer, err := uc.UserRepo.GetUserByReferralCode(ctx, input.InviteCode)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		if referrer != nil {
			referredByID = &referrer.ID
		}
	}

	password, err := generatePassword()
	if err != nil {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Phone:        input.Phone,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(passwordHash),
		Level:        domain.LevelStandard,
		ReferralCode: uc.newReferralCode(),
		InviteCode:   input.InviteCode,
		ReferredByID: referredByID,
		CreatedAt:    time.Now(),
	}
	if err := uc.UserRepo.CreateUser(ctx, user); err != nil {
		return err
	}

	// Credentials mail is best-effort: the account is already committed.
	if err := uc.Mailer.SendLoginCredentials(input.Email, input.Username, password); err != nil {
		slog.Error("failed to send login credentials", "user_id", user.ID, "error", err.Error())
	}
	return nil
}

func (uc *DefaultAuthUsecase) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ForgotPassword never reveals whether the email exists: unknown addresses
// return success without side effects.
func (uc *DefaultAuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	if err := uc.ResetRepo.InvalidateActiveResets(ctx, user.ID); err != nil {
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	reset := &domain.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.ResetRepo.CreateReset(ctx, reset); err != nil {
		return err
	}

	if err := uc.Mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		slog.Error("failed to send password reset email", "user_id", user.ID, "error", err.Error())
	}
	return nil
}

func (uc *DefaultAuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := uc.ResetRepo.GetResetByToken(ctx, token)
	if err != nil {
		return err
	}
	if reset.Used || reset.ExpiresAt.Before(time.Now()) {
		return domain.ErrInvalidResetToken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uc.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := uc.UserRepo.UpdatePassword(ctx, reset.UserID, string(passwordHash)); err != nil {
			return err
		}
		return uc.ResetRepo.MarkUsed(ctx, reset.ID)
	})
}

func (uc *DefaultAuthUsecase) checkNotTaken(ctx context.Context, email, username string) error {
	if _, err := uc.UserRepo.GetUserByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := uc.UserRepo.GetUserByUsername(ctx, username); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

func generatePassword() (string, error) {
	password := make([]byte, passwordLength)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", fmt.Errorf("random int: %w", err)
		}
		password[i] = passwordCharset[n.Int64()]
	}
	return string(password), nil
}
