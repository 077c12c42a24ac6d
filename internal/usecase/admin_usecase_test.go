package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeAdminStore extends fakeStore with the admin, funding and audit
// collections the admin usecase needs.
type fakeAdminStore struct {
	*fakeStore
	admins      map[string]*domain.Admin
	actions     []*domain.AdminAction
	deposits    map[string]*domain.Deposit
	withdrawals []*domain.Withdrawal
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{
		fakeStore: newFakeStore(),
		admins:    make(map[string]*domain.Admin),
		deposits:  make(map[string]*domain.Deposit),
	}
}

func (s *fakeAdminStore) CreateAdmin(_ context.Context, admin *domain.Admin) error {
	copied := *admin
	s.admins[admin.ID] = &copied
	return nil
}

func (s *fakeAdminStore) GetAdminByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, admin := range s.admins {
		if admin.Username == username {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *fakeAdminStore) FindAdminByEmailOrUsername(_ context.Context, email, username string) (*domain.Admin, error) {
	for _, admin := range s.admins {
		if admin.Email == email || admin.Username == username {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAdminStore) RecordAction(_ context.Context, action *domain.AdminAction) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAdminStore) CreateDeposit(_ context.Context, deposit *domain.Deposit) error {
	copied := *deposit
	s.deposits[deposit.ID] = &copied
	return nil
}

func (s *fakeAdminStore) GetDepositByID(_ context.Context, depositID string) (*domain.Deposit, error) {
	deposit, ok := s.deposits[depositID]
	if !ok {
		return nil, domain.ErrDepositNotFound
	}
	copied := *deposit
	return &copied, nil
}

func (s *fakeAdminStore) GetDepositsByUserID(_ context.Context, userID string) ([]*domain.Deposit, error) {
	var result []*domain.Deposit
	for _, deposit := range s.deposits {
		if deposit.UserID == userID {
			copied := *deposit
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeAdminStore) UpdateDepositStatus(_ context.Context, depositID string, status domain.FundingStatus) error {
	deposit, ok := s.deposits[depositID]
	if !ok {
		return domain.ErrDepositNotFound
	}
	deposit.Status = status
	return nil
}

func (s *fakeAdminStore) CreateWithdrawal(_ context.Context, withdrawal *domain.Withdrawal) error {
	copied := *withdrawal
	s.withdrawals = append(s.withdrawals, &copied)
	return nil
}

func (s *fakeAdminStore) GetWithdrawalsByUserID(_ context.Context, userID string) ([]*domain.Withdrawal, error) {
	var result []*domain.Withdrawal
	for _, withdrawal := range s.withdrawals {
		if withdrawal.UserID == userID {
			copied := *withdrawal
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeAdminStore) SumPendingWithdrawals(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, withdrawal := range s.withdrawals {
		if withdrawal.Status == domain.FundingPending {
			sum = sum.Add(withdrawal.Amount)
		}
	}
	return sum, nil
}

func newAdminTestEnv() (*fakeAdminStore, *DefaultAdminUsecase) {
	store := newFakeAdminStore()
	txManager := &fakeTxManager{store: store.fakeStore}
	taskUsecase := NewDefaultTaskUsecase(store, store, store, store, store, txManager, nil, nil, nil)
	uc := NewDefaultAdminUsecase(store, store, store, store, store, store, taskUsecase, txManager, nil, nil)
	return store, uc
}

func seedAdmin(t *testing.T, store *fakeAdminStore, id, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	store.admins[id] = &domain.Admin{
		ID:           id,
		Email:        id + "@example.com",
		Username:     "admin-" + id,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
}

func TestAdminSignup(t *testing.T) {
	store, uc := newAdminTestEnv()

	admin, err := uc.AdminSignup(context.Background(), &AdminSignupInput{
		Email:    "root@example.com",
		Username: "root",
		Password: "hunter22",
		Name:     "Root",
	})
	require.NoError(t, err)
	require.True(t, admin.IsActive)
	require.NotEqual(t, "hunter22", admin.PasswordHash)
	require.Len(t, store.admins, 1)

	_, err = uc.AdminSignup(context.Background(), &AdminSignupInput{
		Email:    "root@example.com",
		Username: "other",
		Password: "hunter22",
	})
	require.ErrorIs(t, err, domain.ErrAdminExists)
}

func TestAdminLogin(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedAdmin(t, store, "a1", "hunter22", true)
	seedAdmin(t, store, "a2", "hunter22", false)

	admin, err := uc.AdminLogin(context.Background(), "admin-a1", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "a1", admin.ID)

	_, err = uc.AdminLogin(context.Background(), "admin-a1", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.AdminLogin(context.Background(), "admin-a2", "hunter22")
	require.ErrorIs(t, err, domain.ErrAdminInactive)
}

func TestSetUserBalance(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "100", domain.LevelStandard, 5)

	user, err := uc.SetUserBalance(context.Background(), "a1", "u1", dec("-12.5"))
	require.NoError(t, err)
	require.Equal(t, "-12.5", user.Balance.String())

	require.Len(t, store.actions, 1)
	require.Equal(t, "set_balance", store.actions[0].Action)
	require.Equal(t, "u1", store.actions[0].TargetID)

	_, err = uc.SetUserBalance(context.Background(), "a1", "ghost", dec("1"))
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetUserNegativeOverrides(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "100", domain.LevelStandard, 0)

	err := uc.SetUserNegativeOverrides(context.Background(), "a1", "u1", []string{"p1", "p2"}, dec("7"))
	require.NoError(t, err)

	require.Len(t, store.overrides, 2)
	override, err := store.FindOverride(context.Background(), "u1", "p2")
	require.NoError(t, err)
	require.Equal(t, "7", override.NegativeAmount.String())
	require.Len(t, store.actions, 1)
	require.Equal(t, "set_overrides", store.actions[0].Action)
}

func TestApproveDeposit(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "10", domain.LevelStandard, 0)
	store.deposits["d1"] = &domain.Deposit{
		ID: "d1", UserID: "u1", Amount: dec("40"), Status: domain.FundingPending,
	}

	deposit, err := uc.ApproveDeposit(context.Background(), "a1", "d1")
	require.NoError(t, err)
	require.Equal(t, domain.FundingCompleted, deposit.Status)
	require.Equal(t, "50", store.users["u1"].Balance.String())
	require.Len(t, store.actions, 1)
	require.Equal(t, "approve_deposit", store.actions[0].Action)

	// Approving twice must not credit twice.
	_, err = uc.ApproveDeposit(context.Background(), "a1", "d1")
	require.Error(t, err)
	require.Equal(t, "50", store.users["u1"].Balance.String())
}

func TestRejectDeposit(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "10", domain.LevelStandard, 0)
	store.deposits["d1"] = &domain.Deposit{
		ID: "d1", UserID: "u1", Amount: dec("40"), Status: domain.FundingPending,
	}

	deposit, err := uc.RejectDeposit(context.Background(), "a1", "d1")
	require.NoError(t, err)
	require.Equal(t, domain.FundingRejected, deposit.Status)
	require.Equal(t, "10", store.users["u1"].Balance.String())

	_, err = uc.RejectDeposit(context.Background(), "a1", "nope")
	require.ErrorIs(t, err, domain.ErrDepositNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "100", domain.LevelStandard, 0)
	seedUser(store.fakeStore, "u2", "100", domain.LevelStandard, 0)
	store.subs = append(store.subs,
		&domain.TaskSubmission{ID: "s1", UserID: "u1", ProductID: "p1", CreatedAt: time.Now().Add(-48 * time.Hour)},
		&domain.TaskSubmission{ID: "s2", UserID: "u1", ProductID: "p2", CreatedAt: time.Now()},
	)
	store.withdrawals = append(store.withdrawals,
		&domain.Withdrawal{ID: "w1", UserID: "u1", Amount: dec("30"), Status: domain.FundingPending},
		&domain.Withdrawal{ID: "w2", UserID: "u2", Amount: dec("20"), Status: domain.FundingCompleted},
	)

	stats, err := uc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(2), stats.TotalSubmissions)
	require.Equal(t, int64(1), stats.TodaysTransactions)
	require.Equal(t, "30", stats.PendingPayout.String())
}

func TestAdminResetUserTasks(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "100", domain.LevelStandard, 33)

	err := uc.ResetUserTasks(context.Background(), "a1", "u1")
	require.NoError(t, err)
	require.Equal(t, 0, store.users["u1"].CompletedTasks)
	require.Len(t, store.actions, 1)
	require.Equal(t, "reset_tasks", store.actions[0].Action)
}

func TestUpdateUserWallet(t *testing.T) {
	store, uc := newAdminTestEnv()
	seedUser(store.fakeStore, "u1", "100", domain.LevelStandard, 0)

	err := uc.UpdateUserWallet(context.Background(), "a1", "u1", "0xabc", "TRC20")
	require.NoError(t, err)
	require.Equal(t, "0xabc", store.users["u1"].WalletAddress)
	require.Equal(t, "TRC20", store.users["u1"].WalletNetwork)
	require.Len(t, store.actions, 1)
	require.Equal(t, "update_wallet", store.actions[0].Action)
}
