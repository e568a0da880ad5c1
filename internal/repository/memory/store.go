package memory

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
)

// FilterFunc reports whether an item belongs in a listing
type FilterFunc[T any] func(ctx context.Context, item *T) bool

// LessFunc orders a listing
type LessFunc[T any] func(a, b *T) bool

// Store is a keyed in-memory table. Values are stored by value and every
// read hands out a copy so callers never alias stored state.
type Store[T any] struct {
	mu     sync.RWMutex
	entity string
	items  map[string]T
}

func NewStore[T any](entity string) *Store[T] {
	return &Store[T]{
		entity: entity,
		items:  make(map[string]T),
	}
}

func (s *Store[T]) Create(_ context.Context, id string, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s already exists", s.entity).
			WithHintf("A %s with this ID already exists", s.entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = *item
	return nil
}

func (s *Store[T]) Get(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, s.notFound(id)
	}
	return &item, nil
}

// Find returns the first item accepted by fn
func (s *Store[T]) Find(ctx context.Context, fn FilterFunc[T]) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if fn(ctx, &item) {
			found := item
			return &found, true
		}
	}
	return nil, false
}

func (s *Store[T]) List(ctx context.Context, filterFn FilterFunc[T], lessFn LessFunc[T]) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn != nil && !filterFn(ctx, &item) {
			continue
		}
		copied := item
		result = append(result, &copied)
	}

	if lessFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return lessFn(result[i], result[j])
		})
	}
	return result
}

func (s *Store[T]) Count(ctx context.Context, filterFn FilterFunc[T]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, &item) {
			count++
		}
	}
	return count
}

func (s *Store[T]) Update(_ context.Context, id string, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}
	s.items[id] = *item
	return nil
}

// Put inserts or replaces an item
func (s *Store[T]) Put(_ context.Context, id string, item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = *item
}

// Mutate applies fn to the stored item under the write lock
func (s *Store[T]) Mutate(_ context.Context, id string, fn func(item *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return s.notFound(id)
	}
	if err := fn(&item); err != nil {
		return err
	}
	s.items[id] = item
	return nil
}

func (s *Store[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}
	delete(s.items, id)
	return nil
}

// Clear removes all items
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

func (s *Store[T]) notFound(id string) error {
	return ierr.NewErrorf("%s not found", s.entity).
		WithHintf("The %s was not found", s.entity).
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrNotFound)
}

// paginate slices a sorted listing by limit and offset
func paginate[T any](items []*T, limit, offset int, unlimited bool) []*T {
	if unlimited {
		return items
	}
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
