package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService issues and validates access tokens for the admin surface.
type AuthService struct {
	repo       userRepository
	validator  *validator.Validate
	logger     *zap.Logger
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo userRepository, validate *validator.Validate, logger *zap.Logger, secret string, expiration time.Duration) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		validator:  validate,
		logger:     logger,
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Login verifies credentials and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	issuedAt := s.now()
	token, err := s.issueToken(user, issuedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.expiration.Seconds()),
		IssuedAt:    issuedAt,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

// ChangePassword rotates the password for the authenticated user.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "new password must be at least 8 characters")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	return nil
}

// EnsureDefaultAdmin seeds the initial admin account when no account
// with the default username exists. Intended for first boot.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.repo.FindByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check admin account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		Username:     defaultAdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed admin account")
	}
	s.logger.Warn("seeded default admin account, change the password immediately",
		zap.String("username", defaultAdminUsername))
	return nil
}

func (s *AuthService) issueToken(user *models.User, issuedAt time.Time) (string, error) {
	claims := models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
