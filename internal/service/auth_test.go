package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studysphere/studysphere-go/internal/model"
	"github.com/studysphere/studysphere-go/internal/repository"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemoryUserRepository, *fakeClock) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewAuthService(repo, AuthOptions{
		Secret:     "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
		Now:        clock.Now,
	})
	return svc, repo, clock
}

func alice() model.SignupRequest {
	return model.SignupRequest{Email: "alice@x.com", Password: "pw123", FirstName: "Alice", LastName: "Liddell"}
}

func TestRegister_EmptyEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.SignupRequest{Email: "  ", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.SignupRequest{Email: "test@example.com"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), alice())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice@x.com", resp.Email)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123")))
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice())
	require.NoError(t, err)

	_, err = svc.Register(ctx, alice())
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Case and surrounding whitespace do not make a new identity.
	again := alice()
	again.Email = "  ALICE@x.com "
	_, err = svc.Register(ctx, again)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

type raceUserStore struct {
	*repository.MemoryUserRepository
}

// GetByEmail always misses, as if a concurrent signup had not committed yet.
func (raceUserStore) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrUserNotFound
}

func TestRegister_DuplicateDetectedOnInsert(t *testing.T) {
	store := raceUserStore{repository.NewMemoryUserRepository()}
	svc := NewAuthService(store, AuthOptions{Secret: "s", BcryptCost: bcrypt.MinCost})

	_, err := svc.Register(context.Background(), alice())
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), alice())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	req := alice()
	req.Password = string(make([]byte, 80))

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestLogin_RejectsLongPasswordWithSharedPrefix(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	req := alice()
	req.Password = strings.Repeat("a", 72)

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: req.Email, Password: req.Password})
	require.NoError(t, err)

	for _, suffix := range []string{"X", "anything-else-at-all"} {
		token, err := svc.Login(ctx, model.LoginRequest{Email: req.Email, Password: req.Password + suffix})
		assert.ErrorIs(t, err, ErrInvalidCredentials, suffix)
		assert.Empty(t, token)
	}
}

type failingUserStore struct{ err error }

func (f failingUserStore) Create(context.Context, *model.User) error { return f.err }
func (f failingUserStore) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, f.err
}
func (f failingUserStore) GetByID(context.Context, string) (*model.User, error) { return nil, f.err }

func TestAuthStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("store unavailable")
	svc := NewAuthService(failingUserStore{err: boom}, AuthOptions{Secret: "s", BcryptCost: bcrypt.MinCost})

	_, err := svc.Register(context.Background(), alice())
	assert.ErrorIs(t, err, boom)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "alice@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, boom)
}

func TestLoginScenario(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, alice())
	require.NoError(t, err)

	token, err := svc.Login(ctx, model.LoginRequest{Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "alice@x.com", Password: "pw124"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, alice())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "nobody@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerify_ExpiresAfterOneHour(t *testing.T) {
	svc, _, clock := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice())
	require.NoError(t, err)
	token, err := svc.Login(ctx, model.LoginRequest{Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = svc.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_RejectsForeignAndMalformedTokens(t *testing.T) {
	svc, _, clock := newTestAuthService(t)
	other := NewAuthService(repository.NewMemoryUserRepository(), AuthOptions{
		Secret: "another-secret", BcryptCost: bcrypt.MinCost, Now: clock.Now,
	})
	ctx := context.Background()

	_, err := other.Register(ctx, alice())
	require.NoError(t, err)
	foreign, err := other.Login(ctx, model.LoginRequest{Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c", foreign} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthenticated, "token %q", token)
	}
}

func TestGetUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, alice())
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered, got)

	_, err = svc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
