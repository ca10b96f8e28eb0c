package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tempero/internal/dbx"
	"github.com/dmitrijs2005/tempero/internal/server/repositories/posts"
	"github.com/dmitrijs2005/tempero/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same process-local repositories for
// every connection; the db arguments are ignored.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	posts *posts.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	u := users.NewMemoryRepository()
	names := func(ctx context.Context, id string) (string, error) {
		user, err := u.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return user.Name, nil
	}
	return &MemoryRepositoryManager{users: u, posts: posts.NewMemoryRepository(names)}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository { return m.posts }
