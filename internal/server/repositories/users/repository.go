package users

import (
	"context"

	"github.com/dmitrijs2005/tempero/internal/server/models"
)

// Repository stores accounts. Lookups of absent users return
// common.ErrorNotFound; Create with a taken email returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
