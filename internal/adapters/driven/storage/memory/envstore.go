package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
)

// Ensure EnvStore implements the interface.
var _ driven.EnvStore = (*EnvStore)(nil)

// EnvStore is an in-memory implementation of driven.EnvStore for testing.
type EnvStore struct {
	mu       sync.RWMutex
	values   map[string]string
	appended []string
	missing  bool
}

// NewEnvStore creates an in-memory env store seeded with values.
func NewEnvStore(values map[string]string) *EnvStore {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &EnvStore{values: copied}
}

// NewMissingEnvStore creates a store that behaves like a nonexistent file.
func NewMissingEnvStore() *EnvStore {
	return &EnvStore{values: make(map[string]string), missing: true}
}

// Read returns a copy of the stored values.
func (s *EnvStore) Read(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.missing {
		return nil, domain.ErrEnvNotFound
	}

	result := make(map[string]string, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result, nil
}

// Append stores the value, overriding earlier assignments like a later line would.
func (s *EnvStore) Append(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.missing = false
	s.values[key] = value
	s.appended = append(s.appended, key+"="+value)
	return nil
}

// Path returns a placeholder path.
func (s *EnvStore) Path() string {
	return "memory://.env"
}

// Appended returns the lines appended so far, in order.
func (s *EnvStore) Appended() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.appended))
	copy(result, s.appended)
	return result
}
