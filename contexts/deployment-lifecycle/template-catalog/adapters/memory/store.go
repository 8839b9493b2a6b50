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

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

// Store is an in-memory adapter implementing the catalog ports for
// local runtime and tests.
type Store struct {
	mu        sync.RWMutex
	templates map[string]entities.Template
	sequence  uint64
	logger    *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		templates: make(map[string]entities.Template),
		logger:    application.ResolveLogger(logger),
	}
}

func (s *Store) Create(_ context.Context, template entities.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.templates {
		if existing.ContentHash == template.ContentHash {
			return domainerrors.ErrTemplateAlreadyExists
		}
	}
	s.templates[template.ID] = template
	return nil
}

func (s *Store) Get(_ context.Context, id string) (entities.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	template, ok := s.templates[id]
	if !ok {
		return entities.Template{}, domainerrors.ErrTemplateNotFound
	}
	return template, nil
}

func (s *Store) List(_ context.Context, filter ports.ListFilter) ([]entities.Template, int64, error) {
	s.mu.RLock()
	matched := make([]entities.Template, 0, len(s.templates))
	for _, template := range s.templates {
		if matchesFilter(template, filter) {
			matched = append(matched, template)
		}
	}
	s.mu.RUnlock()

	sortTemplates(matched, filter.OrderClause)

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

func (s *Store) Replace(_ context.Context, id string, replacement ports.Replacement, now time.Time) (entities.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	template, ok := s.templates[id]
	if !ok {
		return entities.Template{}, domainerrors.ErrTemplateNotFound
	}
	for otherID, existing := range s.templates {
		if otherID != id && existing.ContentHash == replacement.ContentHash {
			return entities.Template{}, domainerrors.ErrTemplateAlreadyExists
		}
	}
	template.Content = replacement.Content
	template.ContentHash = replacement.ContentHash
	template.Name = replacement.Name
	template.Version = replacement.Version
	template.TargetProviderType = replacement.TargetProviderType
	template.ToscaDefinitionsVersion = replacement.ToscaDefinitionsVersion
	template.UpdatedAt = now.UTC()
	template.UpdatedBy = replacement.UpdatedBy
	s.templates[id] = template
	return template, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return domainerrors.ErrTemplateNotFound
	}
	delete(s.templates, id)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("tpl-%d", value), nil
}

func matchesFilter(template entities.Template, filter ports.ListFilter) bool {
	if !containsFold(template.Name, filter.Name) ||
		!containsFold(template.Version, filter.Version) ||
		!containsFold(template.TargetProviderType, filter.TargetProviderType) ||
		!containsFold(template.ToscaDefinitionsVersion, filter.ToscaDefinitionsVersion) {
		return false
	}
	if filter.CreatedBefore != nil && !template.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	if filter.CreatedAfter != nil && !template.CreatedAt.After(*filter.CreatedAfter) {
		return false
	}
	if filter.UpdatedBefore != nil && !template.UpdatedAt.Before(*filter.UpdatedBefore) {
		return false
	}
	if filter.UpdatedAfter != nil && !template.UpdatedAt.After(*filter.UpdatedAfter) {
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

func sortTemplates(items []entities.Template, orderClause string) {
	field, desc := "created_at", true
	if orderClause != "" {
		parts := strings.Fields(orderClause)
		field = parts[0]
		desc = len(parts) > 1 && strings.EqualFold(parts[1], "DESC")
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return lessByField(items[j], items[i], field)
		}
		return lessByField(items[i], items[j], field)
	})
}

func lessByField(a, b entities.Template, field string) bool {
	switch field {
	case "name":
		return a.Name < b.Name
	case "version":
		return a.Version < b.Version
	case "target_provider_type":
		return a.TargetProviderType < b.TargetProviderType
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
