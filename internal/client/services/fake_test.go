package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/client/session"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service tests. Unset funcs fail
// the call so unexpected requests show up.
type fakeClient struct {
	RegisterFn func(ctx context.Context, r models.Registration) (*models.User, error)
	LoginFn    func(ctx context.Context, c models.Credentials) (*models.LoginResult, error)
	ListFn     func(ctx context.Context) ([]models.Post, error)
	CreateFn   func(ctx context.Context, p models.NewPost) (*models.Post, error)
	UpdateFn   func(ctx context.Context, id models.ID, u models.PostUpdate) error
	DeleteFn   func(ctx context.Context, id models.ID) error

	calls []string
}

var errUnexpectedCall = errors.New("unexpected call")

func (f *fakeClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	f.calls = append(f.calls, "register")
	if f.RegisterFn == nil {
		return nil, errUnexpectedCall
	}
	return f.RegisterFn(ctx, r)
}

func (f *fakeClient) Login(ctx context.Context, c models.Credentials) (*models.LoginResult, error) {
	f.calls = append(f.calls, "login")
	if f.LoginFn == nil {
		return nil, errUnexpectedCall
	}
	return f.LoginFn(ctx, c)
}

func (f *fakeClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	f.calls = append(f.calls, "list")
	if f.ListFn == nil {
		return nil, errUnexpectedCall
	}
	return f.ListFn(ctx)
}

func (f *fakeClient) CreatePost(ctx context.Context, p models.NewPost) (*models.Post, error) {
	f.calls = append(f.calls, "create")
	if f.CreateFn == nil {
		return nil, errUnexpectedCall
	}
	return f.CreateFn(ctx, p)
}

func (f *fakeClient) UpdatePost(ctx context.Context, id models.ID, u models.PostUpdate) error {
	f.calls = append(f.calls, "update")
	if f.UpdateFn == nil {
		return errUnexpectedCall
	}
	return f.UpdateFn(ctx, id, u)
}

func (f *fakeClient) DeletePost(ctx context.Context, id models.ID) error {
	f.calls = append(f.calls, "delete")
	if f.DeleteFn == nil {
		return errUnexpectedCall
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeClient) Ping(context.Context) error {
	f.calls = append(f.calls, "ping")
	return nil
}

var _ client.Client = (*fakeClient)(nil)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(session.NewMemoryStorage(), logging.Discard())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func loggedIn(t *testing.T, u models.User) *session.Store {
	t.Helper()
	s := newStore(t)
	require.NoError(t, s.Start(context.Background(), "jwt", u))
	return s
}
