package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/client/session"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/validation"
)

type PostService interface {
	// Refresh replaces the list with the server's, in server order.
	Refresh(ctx context.Context) error
	// Posts returns a copy of the current list.
	Posts() []models.Post
	// Find returns the listed post with id, if any.
	Find(id models.ID) (models.Post, bool)
	// Create posts as the session user, then refreshes the list.
	Create(ctx context.Context, title, content string) (*models.Post, error)
	// Edit changes title and content, then patches the listed copy.
	Edit(ctx context.Context, id models.ID, title, content string) error
	// Delete removes the post, then drops it from the list.
	Delete(ctx context.Context, id models.ID) error
}

type postService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
	now    func() time.Time
	busy   busy

	mu    sync.RWMutex
	posts []models.Post
}

func NewPostService(c client.Client, store *session.Store, log logging.Logger) PostService {
	return &postService{client: c, store: store, log: log, now: time.Now}
}

func (s *postService) Refresh(ctx context.Context) error {
	posts, err := s.client.ListPosts(ctx)
	if err != nil {
		s.log.Debug(ctx, "list posts failed", "kind", client.KindOf(err), "error", err)
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return nil
}

func (s *postService) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *postService) Find(id models.ID) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return s.posts[i], true
}

func (s *postService) Create(ctx context.Context, title, content string) (*models.Post, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	if errs := validation.ValidatePost(title, content); !errs.Empty() {
		return nil, client.NewValidationError(errs)
	}

	if err := s.busy.acquire(); err != nil {
		return nil, err
	}
	defer s.busy.release()

	post, err := s.client.CreatePost(ctx, models.NewPost{
		Title:     title,
		Content:   content,
		AuthorID:  user.ID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// the post exists now; a failed refetch only leaves the list stale
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "refresh after create failed", "error", err)
	}
	return post, nil
}

func (s *postService) Edit(ctx context.Context, id models.ID, title, content string) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}
	if errs := validation.ValidatePost(title, content); !errs.Empty() {
		return client.NewValidationError(errs)
	}
	if err := s.checkAuthor(id, user.ID); err != nil {
		return err
	}

	if err := s.busy.acquire(); err != nil {
		return err
	}
	defer s.busy.release()

	if err := s.client.UpdatePost(ctx, id, models.PostUpdate{Title: title, Content: content}); err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.posts[i].Title = title
		s.posts[i].Content = content
	}
	s.mu.Unlock()
	return nil
}

func (s *postService) Delete(ctx context.Context, id models.ID) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}
	if err := s.checkAuthor(id, user.ID); err != nil {
		return err
	}

	if err := s.busy.acquire(); err != nil {
		return err
	}
	defer s.busy.release()

	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.posts = slices.DeleteFunc(s.posts, func(p models.Post) bool { return p.ID == id })
	s.mu.Unlock()
	return nil
}

func (s *postService) requireUser() (*models.User, error) {
	u := s.store.User()
	if u == nil {
		return nil, &client.Error{Kind: client.KindValidation, Err: client.ErrNotAuthenticated}
	}
	return u, nil
}

// checkAuthor rejects changes to a listed post owned by someone else. Posts
// that are not listed are left for the server to judge.
func (s *postService) checkAuthor(id, userID models.ID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 && s.posts[i].AuthorID != userID {
		return &client.Error{Kind: client.KindValidation, Err: client.ErrForbidden}
	}
	return nil
}

// indexOf must be called with mu held.
func (s *postService) indexOf(id models.ID) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == id })
}
