package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/dbx"
	"github.com/dmitrijs2005/tempero/internal/server/models"
	"github.com/dmitrijs2005/tempero/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tempero/internal/validation"
	"github.com/google/uuid"
)

// PostInput is the body of a create request. CreatedAt is the client's
// timestamp as sent; unparseable values are replaced by the server clock.
type PostInput struct {
	Title     string
	Content   string
	CreatedAt string
}

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m, now: time.Now}
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// Create stores a post written by authorID. Any author sent by the client is
// ignored.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	if errs := validation.ValidatePost(in.Title, in.Content); !errs.Empty() {
		return nil, &ValidationError{Fields: errs}
	}

	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: s.createdAt(in.CreatedAt),
	}

	p, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	if u, err := s.repomanager.Users(s.db).GetByID(ctx, authorID); err == nil {
		p.Author = &models.Author{Name: u.Name}
	}
	return p, nil
}

func (s *PostService) createdAt(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw)); err == nil {
		return t.UTC()
	}
	return s.now().UTC()
}

// Update changes the title and content of a post owned by userID.
func (s *PostService) Update(ctx context.Context, userID, id, title, content string) (*models.Post, error) {
	if errs := validation.ValidatePost(title, content); !errs.Empty() {
		return nil, &ValidationError{Fields: errs}
	}

	var updated *models.Post
	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		p, err := ownedPost(ctx, repo.GetByID, userID, id)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, title, content); err != nil {
			return err
		}
		p.Title, p.Content = title, content
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a post owned by userID.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	return s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if _, err := ownedPost(ctx, repo.GetByID, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func ownedPost(ctx context.Context, get func(context.Context, string) (*models.Post, error), userID, id string) (*models.Post, error) {
	p, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != userID {
		return nil, common.ErrorForbidden
	}
	return p, nil
}

// inTx runs fn in a transaction when the service has a database, and
// directly otherwise.
func (s *PostService) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}
