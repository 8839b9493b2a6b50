package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

// Store is an in-memory adapter implementing the registry ports for
// local runtime and tests. It is not intended as production
// persistence.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entities.User
	sequence uint64
	logger   *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		users:  make(map[string]entities.User),
		logger: application.ResolveLogger(logger),
	}
}

func (s *Store) Create(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Sub == user.Sub && existing.Issuer == user.Issuer {
			return domainerrors.ErrUserAlreadyExists
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) Get(_ context.Context, id string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetBySubIssuer(_ context.Context, sub string, issuer string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Sub == sub && user.Issuer == issuer {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) List(_ context.Context, filter ports.ListFilter) ([]entities.User, int64, error) {
	s.mu.RLock()
	matched := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		if matchesFilter(user, filter) {
			matched = append(matched, user)
		}
	}
	s.mu.RUnlock()

	sortUsers(matched, filter.OrderClause)

	total := int64(len(matched))
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

func (s *Store) Update(_ context.Context, id string, patch ports.Patch, now time.Time) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	user.UpdatedAt = now.UTC()
	s.users[id] = user
	return user, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("usr-%d", value), nil
}

func matchesFilter(user entities.User, filter ports.ListFilter) bool {
	if !containsFold(user.Sub, filter.Sub) ||
		!containsFold(user.Name, filter.Name) ||
		!containsFold(user.Email, filter.Email) ||
		!containsFold(user.Issuer, filter.Issuer) {
		return false
	}
	if filter.CreatedBefore != nil && !user.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	if filter.CreatedAfter != nil && !user.CreatedAt.After(*filter.CreatedAfter) {
		return false
	}
	return true
}

func containsFold(value string, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func sortUsers(items []entities.User, orderClause string) {
	field, desc := "created_at", true
	if orderClause != "" {
		parts := strings.Fields(orderClause)
		field = parts[0]
		desc = len(parts) > 1 && strings.EqualFold(parts[1], "DESC")
	}
	sort.SliceStable(items, func(i, j int) bool {
		less := lessByField(items[i], items[j], field)
		if desc {
			return lessByField(items[j], items[i], field)
		}
		return less
	})
}

func lessByField(a, b entities.User, field string) bool {
	switch field {
	case "name":
		return a.Name < b.Name
	case "email":
		return a.Email < b.Email
	case "sub":
		return a.Sub < b.Sub
	case "issuer":
		return a.Issuer < b.Issuer
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// SecretVault is an in-memory stand-in for the external secret store.
type SecretVault struct {
	mu      sync.Mutex
	secrets map[string]string
	FailPut bool
}

func NewSecretVault() *SecretVault {
	return &SecretVault{secrets: make(map[string]string)}
}

func (v *SecretVault) StoreUserKey(_ context.Context, _ ports.CallerToken, sub string, privateKeyPEM string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.FailPut {
		return fmt.Errorf("secret vault unavailable")
	}
	v.secrets[sub] = privateKeyPEM
	return nil
}

func (v *SecretVault) DeleteUserKey(_ context.Context, _ ports.CallerToken, sub string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.secrets, sub)
	return nil
}

// Key returns the stored private key for a subject, for assertions.
func (v *SecretVault) Key(sub string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	value, ok := v.secrets[sub]
	return value, ok
}
