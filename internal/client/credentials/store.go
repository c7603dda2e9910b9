// Package credentials owns the in-memory access/refresh token pair and
// mirrors every change to encrypted local storage.
package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gigline/internal/client/repositories/secrets"
	"github.com/dmitrijs2005/gigline/internal/common"
	"github.com/dmitrijs2005/gigline/internal/cryptox"
	"github.com/dmitrijs2005/gigline/internal/logging"
)

// Store is the single shared mutable state of the client: the credential
// pair. Reads and writes are guarded by an RWMutex so concurrent requests
// can build headers while a login or refresh updates the tokens.
//
// The in-memory state is authoritative for the current process: persistence
// failures are logged and swallowed, never surfaced to callers.
type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string

	repo secrets.Repository // nil means in-memory only
	key  []byte
	log  logging.Logger
}

// NewStore builds a Store persisting sealed token values through repo.
// A nil repo keeps tokens in memory only (used in tests and as a fallback
// when local storage cannot be opened).
func NewStore(repo secrets.Repository, key []byte, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{repo: repo, key: key, log: log}
}

// Load reads both tokens from persistent storage into memory. Storage or
// decryption errors are treated as "no credentials" and logged; requests
// issued before Load completes simply go out unauthenticated.
func (s *Store) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}

	access := s.loadValue(ctx, common.AccessTokenKey)
	refresh := s.loadValue(ctx, common.RefreshTokenKey)

	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()
}

func (s *Store) loadValue(ctx context.Context, key string) string {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored credential", "key", key, "error", err)
		return ""
	}
	if sealed == nil {
		return ""
	}

	value, err := cryptox.Open(sealed, s.key)
	if err != nil {
		s.log.Warn(ctx, "failed to decrypt stored credential", "key", key, "error", err)
		return ""
	}
	return string(value)
}

// Save stores a new access token and, when refreshToken is non-empty, a new
// refresh token. An empty refreshToken preserves the previously stored one,
// so refresh responses that omit a rotated refresh token do not clobber it.
//
// Memory is updated synchronously before the persistent write, so requests
// issued right after Save observe the new token even if persistence lags or
// fails.
func (s *Store) Save(ctx context.Context, accessToken, refreshToken string) {
	s.mu.Lock()
	s.access = accessToken
	if refreshToken != "" {
		s.refresh = refreshToken
	}
	s.mu.Unlock()

	s.persist(ctx, common.AccessTokenKey, accessToken)
	if refreshToken != "" {
		s.persist(ctx, common.RefreshTokenKey, refreshToken)
	}
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if s.repo == nil {
		return
	}

	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		s.log.Error(ctx, "failed to encrypt credential", "key", key, "error", err)
		return
	}
	if err := s.repo.Set(ctx, key, sealed); err != nil {
		s.log.Error(ctx, "failed to persist credential", "key", key, "error", err)
	}
}

// Clear removes both tokens from memory and storage. Used on logout and on
// unrecoverable refresh failure. Idempotent; storage errors are logged only.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.Delete(ctx, common.AccessTokenKey); err != nil {
		s.log.Warn(ctx, "failed to delete stored access token", "error", err)
	}
	if err := s.repo.Delete(ctx, common.RefreshTokenKey); err != nil {
		s.log.Warn(ctx, "failed to delete stored refresh token", "error", err)
	}
}

// IsAuthenticated reports whether an access token is held in memory. It is a
// cheap check, not a validity guarantee: the token may be expired server-side.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}
