package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/config"
	"github.com/dmitrijs2005/accounts/internal/server/models"
	"github.com/dmitrijs2005/accounts/internal/server/notify"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeUsersRepo is a hand-rolled users.Repository recording mutation calls.
type fakeUsersRepo struct {
	users     map[string]*models.User // keyed by id
	searchOut []*models.User
	searchErr error

	addErr    error
	updateErr error
	deleteErr error

	addCalls    int
	updateCalls int
	deleteCalls int

	lastAdded   *models.User
	lastUpdated *models.User
}

func (f *fakeUsersRepo) Add(ctx context.Context, u *models.User) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.lastAdded = u
	return nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastUpdated = u
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range f.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Search(ctx context.Context, q users.Query) ([]*models.User, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchOut, nil
}

func (f *fakeUsersRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var all []*models.User
	for _, u := range f.users {
		all = append(all, u)
	}
	return all, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Handle(ctx context.Context, notification notify.Notification) {
	n.messages = append(n.messages, notification.Message)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.BcryptCost = 4 // min cost keeps tests fast
	return cfg
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return h
}

func newUserService(repo *fakeUsersRepo, n notify.Notifier) *UserService {
	return NewUserService(repo, n, testConfig())
}

// --- GetByID ---

func TestUserGetByID_Success(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: "h"},
	}}
	s := newUserService(repo, nil)

	view, err := s.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if view.ID != "u-1" || view.Name != "Alice" || view.Login != "alice" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{}}
	n := &recordingNotifier{}
	s := newUserService(repo, n)

	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != "User not found." {
		t.Fatalf("expected notification, got %v", n.messages)
	}
}

// --- Create ---

func TestUserCreate_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(repo, nil)

	view, err := s.Create(context.Background(), "Alice", "alice", "secret123")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if repo.addCalls != 1 {
		t.Fatalf("expected exactly one Add call, got %d", repo.addCalls)
	}
	if view.ID == "" {
		t.Fatalf("expected generated id")
	}
	if view.Name != "Alice" || view.Login != "alice" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if repo.lastAdded.PasswordHash == "secret123" {
		t.Fatalf("raw password must never be stored")
	}
	if !auth.VerifyPassword("secret123", repo.lastAdded.PasswordHash) {
		t.Fatalf("stored hash must verify against the original password")
	}
}

func TestUserCreate_Conflict(t *testing.T) {
	repo := &fakeUsersRepo{
		searchOut: []*models.User{{ID: "u-1", Name: "Alice", Login: "other"}},
	}
	n := &recordingNotifier{}
	s := newUserService(repo, n)

	_, err := s.Create(context.Background(), "Alice", "alice", "pw")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("Add must not be called on conflict, got %d calls", repo.addCalls)
	}
	if len(n.messages) != 1 {
		t.Fatalf("expected one notification, got %v", n.messages)
	}
}

func TestUserCreate_ConflictFromStore(t *testing.T) {
	// Two concurrent creates can pass the search; the store constraint wins.
	repo := &fakeUsersRepo{addErr: common.ErrConflict}
	s := newUserService(repo, nil)

	_, err := s.Create(context.Background(), "Alice", "alice", "pw")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserCreate_SearchError(t *testing.T) {
	repo := &fakeUsersRepo{searchErr: errBoom{}}
	s := newUserService(repo, nil)

	_, err := s.Create(context.Background(), "Alice", "alice", "pw")
	if err == nil || errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected wrapped search error, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("Add must not be called after search failure")
	}
}

// --- Update ---

func TestUserUpdate_Success(t *testing.T) {
	oldHash := mustHash(t, "old-password")
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: oldHash},
	}}
	s := newUserService(repo, nil)

	view, err := s.Update(context.Background(), UpdateParams{
		ID:                 "u-1",
		Name:               "Alice Cooper",
		OldPassword:        "old-password",
		NewPassword:        "new-password",
		NewPasswordConfirm: "new-password",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("expected exactly one Update call, got %d", repo.updateCalls)
	}
	if view.Name != "Alice Cooper" {
		t.Fatalf("expected updated name, got %q", view.Name)
	}
	if !auth.VerifyPassword("new-password", repo.lastUpdated.PasswordHash) {
		t.Fatalf("updated hash must verify against the new password")
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{}}
	s := newUserService(repo, nil)

	_, err := s.Update(context.Background(), UpdateParams{ID: "missing"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("Update must not be called for an unknown id")
	}
}

func TestUserUpdate_ConfirmationMismatch(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: mustHash(t, "old")},
	}}
	n := &recordingNotifier{}
	s := newUserService(repo, n)

	_, err := s.Update(context.Background(), UpdateParams{
		ID:                 "u-1",
		Name:               "Alice",
		OldPassword:        "old",
		NewPassword:        "new-one",
		NewPasswordConfirm: "new-two",
	})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("store Update must never run on confirmation mismatch")
	}
}

func TestUserUpdate_WrongOldPassword(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: mustHash(t, "real-old")},
	}}
	s := newUserService(repo, nil)

	_, err := s.Update(context.Background(), UpdateParams{
		ID:                 "u-1",
		Name:               "Alice",
		OldPassword:        "wrong-old",
		NewPassword:        "new",
		NewPasswordConfirm: "new",
	})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("store Update must never run with a wrong old password")
	}
}

func TestUserUpdate_ChecksConfirmationBeforeOldPassword(t *testing.T) {
	// Both the confirmation and the old password are wrong; the confirmation
	// check must fire first.
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: mustHash(t, "real-old")},
	}}
	n := &recordingNotifier{}
	s := newUserService(repo, n)

	_, err := s.Update(context.Background(), UpdateParams{
		ID:                 "u-1",
		OldPassword:        "wrong-old",
		NewPassword:        "a",
		NewPasswordConfirm: "b",
	})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != "The new password confirmation is different than the new password." {
		t.Fatalf("expected confirmation-mismatch notification first, got %v", n.messages)
	}
}

// --- Delete ---

func TestUserDelete_Success(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice"},
	}}
	s := newUserService(repo, nil)

	if err := s.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if repo.deleteCalls != 1 {
		t.Fatalf("expected exactly one Delete call, got %d", repo.deleteCalls)
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{}}
	s := newUserService(repo, nil)

	err := s.Delete(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("store Delete must never be invoked for an unknown id")
	}
}

// --- GetAll ---

func TestUserGetAll_ReturnsViews(t *testing.T) {
	repo := &fakeUsersRepo{users: map[string]*models.User{
		"u-1": {ID: "u-1", Name: "Alice", Login: "alice", PasswordHash: "h1"},
		"u-2": {ID: "u-2", Name: "Bob", Login: "bob", PasswordHash: "h2"},
	}}
	s := newUserService(repo, nil)

	views, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
}
