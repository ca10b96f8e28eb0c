package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/client/session"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/validation"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account. The session is not touched.
//   - Login: authenticate and start a persisted session.
//   - Logout: end the session.
//
// Validation failures come back as *client.Error of KindValidation and are
// never sent to the server.
type AuthService interface {
	Register(ctx context.Context, form validation.Registration) (*models.User, error)
	Login(ctx context.Context, form validation.Credentials) (*models.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	CurrentUser() *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
	busy   busy
}

func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

func (a *authService) Register(ctx context.Context, form validation.Registration) (*models.User, error) {
	if errs := validation.ValidateRegistration(form); !errs.Empty() {
		return nil, client.NewValidationError(errs)
	}

	if err := a.busy.acquire(); err != nil {
		return nil, err
	}
	defer a.busy.release()

	u, err := a.client.Register(ctx, models.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
		Bio:      form.Bio,
	})
	if err != nil {
		a.log.Debug(ctx, "register failed", "kind", client.KindOf(err), "error", err)
		return nil, err
	}

	a.log.Info(ctx, "account registered", "email", form.Email)
	return u, nil
}

func (a *authService) Login(ctx context.Context, form validation.Credentials) (*models.User, error) {
	if errs := validation.ValidateLogin(form); !errs.Empty() {
		return nil, client.NewValidationError(errs)
	}

	if err := a.busy.acquire(); err != nil {
		return nil, err
	}
	defer a.busy.release()

	res, err := a.client.Login(ctx, models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		a.log.Debug(ctx, "login failed", "kind", client.KindOf(err), "error", err)
		return nil, err
	}

	if err := a.store.Start(ctx, res.Token, *res.User); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user", res.User.ID)
	return a.store.User(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.End(ctx)
}

func (a *authService) IsAuthenticated() bool { return a.store.IsAuthenticated() }

func (a *authService) CurrentUser() *models.User { return a.store.User() }

func (a *authService) Ping(ctx context.Context) error { return a.client.Ping(ctx) }
