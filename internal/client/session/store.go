// Package session holds the client's authentication state: anonymous, or
// authenticated with a token and the logged-in user. The state is mirrored
// to a Storage so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/logging"
)

type Store struct {
	storage Storage
	log     logging.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewStore(storage Storage, log logging.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Load hydrates the store from storage. An empty storage leaves the store
// anonymous. A token without a user, a user without a token, or a user record
// that cannot be decoded is removed from storage.
func (s *Store) Load(ctx context.Context) error {
	token, err := s.storage.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	raw, err := s.storage.Get(ctx, common.SessionUserKey)
	if err != nil {
		return fmt.Errorf("load session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil

	if len(raw) == 0 || len(token) == 0 {
		if len(raw) == 0 && len(token) == 0 {
			return nil
		}
		s.log.Warn(ctx, "stored session is incomplete, discarding it")
		if err := s.storage.DeleteAll(ctx, common.SessionTokenKey, common.SessionUserKey); err != nil {
			return fmt.Errorf("discard incomplete session: %w", err)
		}
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "stored user is corrupt, discarding session", "error", err)
		if err := s.storage.DeleteAll(ctx, common.SessionTokenKey, common.SessionUserKey); err != nil {
			return fmt.Errorf("discard corrupt session: %w", err)
		}
		return nil
	}

	s.token, s.user = string(token), &u
	return nil
}

// Start persists token and user, then marks the store authenticated. When
// persisting fails the state is left as it was.
func (s *Store) Start(ctx context.Context, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SetAll(ctx, map[string][]byte{
		common.SessionTokenKey: []byte(token),
		common.SessionUserKey:  raw,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.token, s.user = token, &user
	return nil
}

// End removes the persisted session and makes the store anonymous. The
// in-memory state is cleared even when storage fails.
func (s *Store) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token, s.user = "", nil
	if err := s.storage.DeleteAll(ctx, common.SessionTokenKey, common.SessionUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
