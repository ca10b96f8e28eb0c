// Package services contains the backend's business logic: UserService for
// registration, login and token checks, and PostService for the post CRUD
// with author checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/server/auth"
	"github.com/dmitrijs2005/tempero/internal/server/config"
	"github.com/dmitrijs2005/tempero/internal/server/models"
	"github.com/dmitrijs2005/tempero/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tempero/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is a sign-up request. The wire carries no confirmation field,
// so the password is checked against itself.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Bio      string
	Password string
}

// UserService provides authentication-related operations:
// - Register: validate and create users
// - Login: verify credentials and mint a token
// - Authenticate: resolve a bearer token to a user id
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewUserService constructs a UserService. db may be nil when m is the
// in-memory manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		bcryptCost:    bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates in and creates the user. A taken email yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	errs := validation.ValidateRegistration(validation.Registration{
		Name:                 in.Name,
		Email:                in.Email,
		Phone:                in.Phone,
		Bio:                  in.Bio,
		Password:             in.Password,
		PasswordConfirmation: in.Password,
	})
	if !errs.Empty() {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		Phone:        in.Phone,
		Bio:          in.Bio,
		PasswordHash: hash,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed token with the user.
// Unknown emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if errs := validation.ValidateLogin(validation.Credentials{Email: email, Password: password}); !errs.Empty() {
		return "", nil, &ValidationError{Fields: errs}
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return token, user, nil
}

// Authenticate returns the user id carried by token.
func (s *UserService) Authenticate(_ context.Context, token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
