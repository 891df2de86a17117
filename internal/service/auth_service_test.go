package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type mockUserRepo struct {
	users    map[string]models.User
	rotated  map[string]string
	seeded   *models.User
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[string]models.User)
	}
	if user.ID == "" {
		user.ID = "user-1"
	}
	m.users[user.ID] = *user
	m.seeded = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.rotated == nil {
		m.rotated = make(map[string]string)
	}
	m.rotated[id] = passwordHash
	return nil
}

func adminUser(t *testing.T, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{ID: "user-1", Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin}
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceValidateToken(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	issuer := NewAuthService(repo, validator.New(), zap.NewNop(), "secret-a", time.Hour)
	verifier := NewAuthService(repo, validator.New(), zap.NewNop(), "secret-b", time.Hour)

	resp, err := issuer.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "muchstronger"})
	require.NoError(t, err)
	require.Contains(t, repo.rotated, "user-1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.rotated["user-1"]), []byte("muchstronger")))
}

func TestAuthServiceChangePasswordWrongOld(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{"user-1": adminUser(t, "secret123")}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "muchstronger"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceEnsureDefaultAdminSeeds(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), "test-secret", time.Hour)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	require.NotNil(t, repo.seeded)
	assert.Equal(t, "admin", repo.seeded.Username)
	assert.Equal(t, models.RoleAdmin, repo.seeded.Role)

	repo.seeded = nil
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	assert.Nil(t, repo.seeded)
}
