package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeStore implements every repository interface the task usecase touches.
// State lives in plain maps so tests can inspect it directly.
type fakeStore struct {
	users     map[string]*domain.User
	products  map[string]*domain.Product
	overrides map[string]*domain.UserTaskOverride
	subs      []*domain.TaskSubmission
	bonuses   []*domain.ReferralBonus

	failCreateBonus error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*domain.User),
		products:  make(map[string]*domain.Product),
		overrides: make(map[string]*domain.UserTaskOverride),
	}
}

func overrideKey(userID, productID string) string {
	return userID + "/" + productID
}

func cloneUser(user *domain.User) *domain.User {
	copied := *user
	return &copied
}

func cloneProduct(product *domain.Product) *domain.Product {
	copied := *product
	return &copied
}

func (s *fakeStore) CreateUser(_ context.Context, user *domain.User) error {
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *fakeStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *fakeStore) GetUserByIDForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return s.GetUserByID(ctx, userID)
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeStore) GetUserByReferralCode(_ context.Context, code string) (*domain.User, error) {
	for _, user := range s.users {
		if user.ReferralCode == code {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeStore) GetReferredUsers(_ context.Context, referrerID string) ([]*domain.User, error) {
	var referred []*domain.User
	for _, user := range s.users {
		if user.ReferredByID != nil && *user.ReferredByID == referrerID {
			referred = append(referred, cloneUser(user))
		}
	}
	return referred, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, userID string, patch *domain.UserUpdate) error {
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Country != nil {
		user.Country = *patch.Country
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}
	if patch.WalletAddress != nil {
		user.WalletAddress = *patch.WalletAddress
	}
	if patch.WalletNetwork != nil {
		user.WalletNetwork = *patch.WalletNetwork
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	return nil
}

func (s *fakeStore) AdjustBalance(_ context.Context, userID string, delta decimal.Decimal) error {
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance = user.Balance.Add(delta)
	return nil
}

func (s *fakeStore) SetBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance = balance
	return nil
}

func (s *fakeStore) SetCompletedTasks(_ context.Context, userID string, completed int) error {
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.CompletedTasks = completed
	return nil
}

func (s *fakeStore) ListUsers(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	return users, nil
}

func (s *fakeStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *fakeStore) CreateProduct(_ context.Context, product *domain.Product) error {
	s.products[product.ID] = cloneProduct(product)
	return nil
}

func (s *fakeStore) GetProductByID(_ context.Context, productID string) (*domain.Product, error) {
	product, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (s *fakeStore) UpdateProduct(_ context.Context, productID string, patch *domain.ProductUpdate) error {
	product, ok := s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.NegativeAmount != nil {
		product.NegativeAmount = *patch.NegativeAmount
	}
	if patch.EndDate != nil {
		product.EndDate = *patch.EndDate
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	return nil
}

func (s *fakeStore) GetActiveProducts(_ context.Context, now time.Time) ([]*domain.Product, error) {
	var active []*domain.Product
	for _, product := range s.products {
		if product.Available(now) {
			active = append(active, cloneProduct(product))
		}
	}
	return active, nil
}

func (s *fakeStore) GetActiveProductsExcluding(ctx context.Context, now time.Time, excludeIDs []string) ([]*domain.Product, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	active, err := s.GetActiveProducts(ctx, now)
	if err != nil {
		return nil, err
	}
	var filtered []*domain.Product
	for _, product := range active {
		if !excluded[product.ID] {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *fakeStore) CreateSubmission(_ context.Context, submission *domain.TaskSubmission) error {
	for _, existing := range s.subs {
		if existing.UserID == submission.UserID && existing.ProductID == submission.ProductID {
			return domain.ErrTaskAlreadyDone
		}
	}
	s.subs = append(s.subs, submission)
	return nil
}

func (s *fakeStore) HasSubmission(_ context.Context, userID, productID string) (bool, error) {
	for _, submission := range s.subs {
		if submission.UserID == userID && submission.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GetSubmissionsByUserID(_ context.Context, userID string) ([]*domain.TaskSubmission, error) {
	var result []*domain.TaskSubmission
	for i := len(s.subs) - 1; i >= 0; i-- {
		if s.subs[i].UserID == userID {
			submission := *s.subs[i]
			if product, ok := s.products[submission.ProductID]; ok {
				submission.Product = cloneProduct(product)
			}
			result = append(result, &submission)
		}
	}
	return result, nil
}

func (s *fakeStore) ListSubmittedProductIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, submission := range s.subs {
		if submission.UserID == userID {
			ids = append(ids, submission.ProductID)
		}
	}
	return ids, nil
}

func (s *fakeStore) CountSubmissions(_ context.Context) (int64, error) {
	return int64(len(s.subs)), nil
}

func (s *fakeStore) CountSubmissionsSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, submission := range s.subs {
		if !submission.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) FindOverride(_ context.Context, userID, productID string) (*domain.UserTaskOverride, error) {
	override, ok := s.overrides[overrideKey(userID, productID)]
	if !ok {
		return nil, nil
	}
	copied := *override
	return &copied, nil
}

func (s *fakeStore) ListOverridesForUser(_ context.Context, userID string) ([]*domain.UserTaskOverride, error) {
	var result []*domain.UserTaskOverride
	for _, override := range s.overrides {
		if override.UserID == userID {
			copied := *override
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeStore) UpsertOverride(_ context.Context, override *domain.UserTaskOverride) error {
	copied := *override
	s.overrides[overrideKey(override.UserID, override.ProductID)] = &copied
	return nil
}

func (s *fakeStore) CreateBonus(_ context.Context, bonus *domain.ReferralBonus) error {
	if s.failCreateBonus != nil {
		return s.failCreateBonus
	}
	s.bonuses = append(s.bonuses, bonus)
	return nil
}

func (s *fakeStore) GetBonusesByReferrerID(_ context.Context, referrerID string) ([]*domain.ReferralBonus, error) {
	var result []*domain.ReferralBonus
	for _, bonus := range s.bonuses {
		if bonus.ReferrerID == referrerID {
			result = append(result, bonus)
		}
	}
	return result, nil
}

type storeSnapshot struct {
	users     map[string]*domain.User
	products  map[string]*domain.Product
	overrides map[string]*domain.UserTaskOverride
	subs      []*domain.TaskSubmission
	bonuses   []*domain.ReferralBonus
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		users:     make(map[string]*domain.User, len(s.users)),
		products:  make(map[string]*domain.Product, len(s.products)),
		overrides: make(map[string]*domain.UserTaskOverride, len(s.overrides)),
		subs:      append([]*domain.TaskSubmission(nil), s.subs...),
		bonuses:   append([]*domain.ReferralBonus(nil), s.bonuses...),
	}
	for id, user := range s.users {
		snap.users[id] = cloneUser(user)
	}
	for id, product := range s.products {
		snap.products[id] = cloneProduct(product)
	}
	for key, override := range s.overrides {
		copied := *override
		snap.overrides[key] = &copied
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.users = snap.users
	s.products = snap.products
	s.overrides = snap.overrides
	s.subs = snap.subs
	s.bonuses = snap.bonuses
}

// fakeTxManager rolls the store back to its pre-transaction state when the
// callback fails, mirroring a real database rollback.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func newTaskTestEnv() (*fakeStore, *DefaultTaskUsecase) {
	store := newFakeStore()
	uc := NewDefaultTaskUsecase(store, store, store, store, store, &fakeTxManager{store: store}, nil, nil, nil)
	return store, uc
}

func seedUser(store *fakeStore, id, balance string, level, completed int) {
	store.users[id] = &domain.User{
		ID:             id,
		Username:       "user-" + id,
		Email:          id + "@example.com",
		Balance:        dec(balance),
		Level:          level,
		CompletedTasks: completed,
		ReferralCode:   "CODE" + id,
		CreatedAt:      time.Now(),
	}
}

func seedActiveProduct(store *fakeStore, id, debit string) {
	store.products[id] = &domain.Product{
		ID:             id,
		Name:           "Product " + id,
		Price:          dec("100"),
		NegativeAmount: dec(debit),
		EndDate:        time.Now().Add(24 * time.Hour),
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
}

func TestSubmitTask(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 0)
	seedActiveProduct(store, "p1", "20")

	submission, err := uc.SubmitTask(context.Background(), "u1", "p1")
	if err != nil {
		t.Fatalf("SubmitTask: %v", err)
	}

	if got := submission.ProfitEarned.String(); got != "0.75" {
		t.Errorf("profit = %s, want 0.75", got)
	}
	if got := submission.AmountDebited.String(); got != "20" {
		t.Errorf("debit = %s, want 20", got)
	}

	user := store.users["u1"]
	if got := user.Balance.String(); got != "80.75" {
		t.Errorf("balance = %s, want 80.75", got)
	}
	if user.CompletedTasks != 1 {
		t.Errorf("completed tasks = %d, want 1", user.CompletedTasks)
	}
	if len(store.subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(store.subs))
	}
}

func TestSubmitTaskPremiumRate(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "200", domain.LevelPremium, 5)
	seedActiveProduct(store, "p1", "20")

	submission, err := uc.SubmitTask(context.Background(), "u1", "p1")
	require.NoError(t, err)

	if got := submission.ProfitEarned.String(); got != "2" {
		t.Errorf("profit = %s, want 2", got)
	}
	if got := store.users["u1"].Balance.String(); got != "182" {
		t.Errorf("balance = %s, want 182", got)
	}
}

func TestSubmitTaskReferralFanOut(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 3)
	seedUser(store, "r1", "10", domain.LevelStandard, 0)
	seedUser(store, "r2", "10", domain.LevelStandard, 0)
	referrerID := "u1"
	store.users["r1"].ReferredByID = &referrerID
	store.users["r2"].ReferredByID = &referrerID
	seedActiveProduct(store, "p1", "20")

	_, err := uc.SubmitTask(context.Background(), "u1", "p1")
	require.NoError(t, err)

	// Bonuses come out of nowhere: the submitter keeps the full profit.
	if got := store.users["u1"].Balance.String(); got != "80.75" {
		t.Errorf("submitter balance = %s, want 80.75", got)
	}
	for _, referredID := range []string{"r1", "r2"} {
		if got := store.users[referredID].Balance.String(); got != "10.1875" {
			t.Errorf("%s balance = %s, want 10.1875", referredID, got)
		}
	}

	require.Len(t, store.bonuses, 2)
	for _, bonus := range store.bonuses {
		if bonus.ReferrerID != "u1" {
			t.Errorf("bonus referrer = %s, want u1", bonus.ReferrerID)
		}
		if got := bonus.BonusAmount.String(); got != "0.1875" {
			t.Errorf("bonus amount = %s, want 0.1875", got)
		}
		if bonus.TaskSubmissionID != store.subs[0].ID {
			t.Errorf("bonus submission = %s, want %s", bonus.TaskSubmissionID, store.subs[0].ID)
		}
	}
}

func TestSubmitTaskRejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(store *fakeStore)
		userID  string
		wantErr error
	}{
		{
			name:    "unknown user",
			setup:   func(store *fakeStore) {},
			userID:  "ghost",
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "negative balance",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "-1", domain.LevelStandard, 2)
			},
			userID:  "u1",
			wantErr: domain.ErrNegativeBalance,
		},
		{
			name: "already submitted",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "100", domain.LevelStandard, 2)
				store.subs = append(store.subs, &domain.TaskSubmission{
					ID: "s1", UserID: "u1", ProductID: "p1", CreatedAt: time.Now(),
				})
			},
			userID:  "u1",
			wantErr: domain.ErrTaskAlreadyDone,
		},
		{
			name: "inactive product",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "100", domain.LevelStandard, 2)
				store.products["p1"].IsActive = false
			},
			userID:  "u1",
			wantErr: domain.ErrProductUnavailable,
		},
		{
			name: "expired product",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "100", domain.LevelStandard, 2)
				store.products["p1"].EndDate = time.Now().Add(-time.Hour)
			},
			userID:  "u1",
			wantErr: domain.ErrProductUnavailable,
		},
		{
			name: "first task below minimum balance",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "49.99", domain.LevelStandard, 0)
			},
			userID:  "u1",
			wantErr: domain.ErrMinimumBalance,
		},
		{
			name: "insufficient funds for debit",
			setup: func(store *fakeStore) {
				seedUser(store, "u1", "5", domain.LevelStandard, 2)
			},
			userID:  "u1",
			wantErr: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := newTaskTestEnv()
			seedActiveProduct(store, "p1", "20")
			tt.setup(store)
			before := store.snapshot()

			_, err := uc.SubmitTask(context.Background(), tt.userID, "p1")
			require.ErrorIs(t, err, tt.wantErr)

			// A rejected submission leaves no trace.
			require.Len(t, store.subs, len(before.subs))
			if user, ok := before.users[tt.userID]; ok {
				require.True(t, store.users[tt.userID].Balance.Equal(user.Balance))
				require.Equal(t, user.CompletedTasks, store.users[tt.userID].CompletedTasks)
			}
		})
	}
}

func TestSubmitTaskFirstTaskAtMinimum(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "50", domain.LevelStandard, 0)
	seedActiveProduct(store, "p1", "20")

	submission, err := uc.SubmitTask(context.Background(), "u1", "p1")
	require.NoError(t, err)

	if got := submission.ProfitEarned.String(); got != "0.375" {
		t.Errorf("profit = %s, want 0.375", got)
	}
	if got := store.users["u1"].Balance.String(); got != "30.375" {
		t.Errorf("balance = %s, want 30.375", got)
	}
}

func TestSubmitTaskLevelCaps(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		completed int
		wantErr   error
	}{
		{"standard below cap", domain.LevelStandard, 32, nil},
		{"standard at cap prompts upgrade", domain.LevelStandard, 33, domain.ErrUpgradeRequired},
		{"standard past cap", domain.LevelStandard, 34, domain.ErrTaskLimitReached},
		{"premium below cap", domain.LevelPremium, 37, nil},
		{"premium at cap", domain.LevelPremium, 38, domain.ErrTaskLimitReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := newTaskTestEnv()
			seedUser(store, "u1", "100", tt.level, tt.completed)
			seedActiveProduct(store, "p1", "20")

			_, err := uc.SubmitTask(context.Background(), "u1", "p1")
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, tt.completed+1, store.users["u1"].CompletedTasks)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, tt.completed, store.users["u1"].CompletedTasks)
			}
		})
	}
}

func TestSubmitTaskOverrideReplacesDebit(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 2)
	seedActiveProduct(store, "p1", "25")
	store.overrides[overrideKey("u1", "p1")] = &domain.UserTaskOverride{
		ID: "o1", UserID: "u1", ProductID: "p1", NegativeAmount: dec("10"),
	}

	submission, err := uc.SubmitTask(context.Background(), "u1", "p1")
	require.NoError(t, err)

	if got := submission.AmountDebited.String(); got != "10" {
		t.Errorf("debit = %s, want override amount 10", got)
	}
	if got := store.users["u1"].Balance.String(); got != "90.75" {
		t.Errorf("balance = %s, want 90.75", got)
	}
}

func TestSubmitTaskRollsBackOnBonusFailure(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 2)
	seedUser(store, "r1", "10", domain.LevelStandard, 0)
	referrerID := "u1"
	store.users["r1"].ReferredByID = &referrerID
	seedActiveProduct(store, "p1", "20")
	store.failCreateBonus = errors.New("bonus store down")

	_, err := uc.SubmitTask(context.Background(), "u1", "p1")
	require.Error(t, err)

	// Everything written before the fault must be rolled back.
	require.Len(t, store.subs, 0)
	require.Equal(t, "100", store.users["u1"].Balance.String())
	require.Equal(t, 2, store.users["u1"].CompletedTasks)
	require.Equal(t, "10", store.users["r1"].Balance.String())

	// A failed attempt leaves the product claimable: the retry succeeds.
	store.failCreateBonus = nil
	_, err = uc.SubmitTask(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, store.subs, 1)
}

func TestGetUserTasksNewestFirst(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 0)
	seedActiveProduct(store, "p1", "20")
	seedActiveProduct(store, "p2", "20")
	store.subs = append(store.subs,
		&domain.TaskSubmission{ID: "s1", UserID: "u1", ProductID: "p1", CreatedAt: time.Now().Add(-time.Hour)},
		&domain.TaskSubmission{ID: "s2", UserID: "u1", ProductID: "p2", CreatedAt: time.Now()},
		&domain.TaskSubmission{ID: "s3", UserID: "other", ProductID: "p1", CreatedAt: time.Now()},
	)

	tasks, err := uc.GetUserTasks(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "s2", tasks[0].ID)
	require.Equal(t, "s1", tasks[1].ID)
	require.NotNil(t, tasks[0].Product)
}

func TestResetUserTasks(t *testing.T) {
	store, uc := newTaskTestEnv()
	seedUser(store, "u1", "100", domain.LevelStandard, 33)

	if err := uc.ResetUserTasks(context.Background(), "u1"); err != nil {
		t.Fatalf("ResetUserTasks: %v", err)
	}
	if got := store.users["u1"].CompletedTasks; got != 0 {
		t.Errorf("completed tasks = %d, want 0", got)
	}

	err := uc.ResetUserTasks(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
