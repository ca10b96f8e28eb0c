package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/server/models"
)

// MemoryRepository keeps users in process memory. Records are copied in and
// out so callers never share state with the store.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
