package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/server/models"
)

// AuthorNames resolves a user id to a display name for listed posts.
type AuthorNames func(ctx context.Context, userID string) (string, error)

// MemoryRepository keeps posts in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
	names AuthorNames
}

// NewMemoryRepository returns an empty repository. names may be nil, in which
// case listed posts carry no author.
func NewMemoryRepository(names AuthorNames) *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]models.Post), names: names}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	result := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		result = append(result, &p)
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if r.names != nil {
		for _, p := range result {
			name, err := r.names(ctx, p.AuthorID)
			if err != nil {
				continue
			}
			p.Author = &models.Author{Name: name}
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	stored := *post
	stored.Author = nil
	r.posts[post.ID] = stored
	return post, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Update(_ context.Context, id, title, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Title, p.Content = title, content
	r.posts[id] = p
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	return nil
}
