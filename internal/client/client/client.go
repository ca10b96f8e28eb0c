package client

import (
	"context"

	"github.com/dmitrijs2005/tempero/internal/client/models"
)

// Client is the transport-agnostic contract of the Tempero REST backend.
type Client interface {
	// Register creates an account. A nil user with a nil error means the
	// server acknowledged without returning the record.
	Register(ctx context.Context, r models.Registration) (*models.User, error)
	Login(ctx context.Context, c models.Credentials) (*models.LoginResult, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.NewPost) (*models.Post, error)
	UpdatePost(ctx context.Context, id models.ID, u models.PostUpdate) error
	DeletePost(ctx context.Context, id models.ID) error
	Ping(ctx context.Context) error
}
