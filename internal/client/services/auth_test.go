package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validForm = validation.Registration{
	Name:                 "Ana Lima",
	Email:                "ana@example.com",
	Phone:                "(11) 98765-4321",
	Password:             "Abc123!",
	PasswordConfirmation: "Abc123!",
}

func TestRegister_InvalidFormNeverReachesServer(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, newStore(t), logging.Discard())

	form := validForm
	form.PasswordConfirmation = "other"
	_, err := svc.Register(context.Background(), form)

	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Contains(t, client.FieldErrorsOf(err), validation.FieldPasswordConfirmation)
	assert.Empty(t, fc.calls)
}

func TestRegister_SendsFormAndLeavesSessionAlone(t *testing.T) {
	var got models.Registration
	fc := &fakeClient{RegisterFn: func(_ context.Context, r models.Registration) (*models.User, error) {
		got = r
		return &models.User{ID: "u1", Name: r.Name}, nil
	}}
	store := newStore(t)
	svc := NewAuthService(fc, store, logging.Discard())

	u, err := svc.Register(context.Background(), validForm)
	require.NoError(t, err)
	assert.Equal(t, models.ID("u1"), u.ID)
	assert.Equal(t, models.Registration{
		Name: "Ana Lima", Email: "ana@example.com", Phone: "(11) 98765-4321", Password: "Abc123!",
	}, got)
	assert.False(t, store.IsAuthenticated())
}

func TestRegister_PassesServerErrorThrough(t *testing.T) {
	taken := &client.Error{Kind: client.KindServer, Status: 409, Err: client.ErrEmailTaken}
	fc := &fakeClient{RegisterFn: func(context.Context, models.Registration) (*models.User, error) {
		return nil, taken
	}}
	_, err := NewAuthService(fc, newStore(t), logging.Discard()).Register(context.Background(), validForm)
	assert.ErrorIs(t, err, client.ErrEmailTaken)
}

func TestLogin_RequiredFieldsOnly(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, newStore(t), logging.Discard())

	_, err := svc.Login(context.Background(), validation.Credentials{})
	fe := client.FieldErrorsOf(err)
	assert.Equal(t, []string{validation.FieldEmail, validation.FieldPassword}, fe.Keys())
	assert.Empty(t, fc.calls)
}

func TestLogin_StartsSession(t *testing.T) {
	fc := &fakeClient{LoginFn: func(_ context.Context, c models.Credentials) (*models.LoginResult, error) {
		assert.Equal(t, models.Credentials{Email: "ana@example.com", Password: "x"}, c)
		return &models.LoginResult{Token: "jwt", User: &models.User{ID: "u1", Name: "Ana"}}, nil
	}}
	store := newStore(t)
	svc := NewAuthService(fc, store, logging.Discard())

	u, err := svc.Login(context.Background(), validation.Credentials{Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "jwt", store.Token())
	assert.Equal(t, models.ID("u1"), svc.CurrentUser().ID)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.CurrentUser())
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	errs := []error{
		&client.Error{Kind: client.KindServer, Status: 401, Err: client.ErrInvalidCredentials},
		&client.Error{Kind: client.KindMalformed, Status: 200, Err: client.ErrMalformedResponse},
		&client.Error{Kind: client.KindNetwork, Err: client.ErrUnavailable},
	}
	for _, want := range errs {
		fc := &fakeClient{LoginFn: func(context.Context, models.Credentials) (*models.LoginResult, error) {
			return nil, want
		}}
		store := newStore(t)
		svc := NewAuthService(fc, store, logging.Discard())

		_, err := svc.Login(context.Background(), validation.Credentials{Email: "a@b.co", Password: "x"})
		assert.True(t, errors.Is(err, want))
		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, store.Token())
	}
}

func TestLogin_BusyRejectsSecondSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fc := &fakeClient{LoginFn: func(context.Context, models.Credentials) (*models.LoginResult, error) {
		close(entered)
		<-release
		return &models.LoginResult{Token: "jwt", User: &models.User{ID: "u1"}}, nil
	}}
	svc := NewAuthService(fc, newStore(t), logging.Discard())
	creds := validation.Credentials{Email: "a@b.co", Password: "x"}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Login(context.Background(), creds)
		done <- err
	}()
	<-entered

	_, err := svc.Login(context.Background(), creds)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}
