// Package posts stores blog posts for the development backend.
package posts

import (
	"context"

	"github.com/dmitrijs2005/tempero/internal/server/models"
)

type Repository interface {
	// List returns every post, newest first, with the author's name filled in.
	List(ctx context.Context) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
}
