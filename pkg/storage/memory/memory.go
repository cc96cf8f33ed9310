// Package memory provides a non persistent store, mainly for tests and
// one-shot invocations.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/factory"
)

const StoreTypeMemory factory.StoreType = "memory"

type (
	memoryStore struct {
		bundles *repo[model.Bundle]
		golfers *repo[model.Golfer]
	}
	repo[T any] struct {
		mu     sync.RWMutex
		items  map[string]T
		nameOf func(*T) string
		clone  func(T) T
		log    *log.Logger
	}
)

var _ storage.Store = (*memoryStore)(nil)

func New() storage.Store {
	l := log.Default().Named("storage.memory")
	return &memoryStore{
		bundles: newRepo(storage.BundleName, cloneBundle, l),
		golfers: newRepo(storage.GolferName, func(g model.Golfer) model.Golfer { return g }, l),
	}
}

func newRepo[T any](nameOf func(*T) string, clone func(T) T, l *log.Logger) *repo[T] {
	return &repo[T]{items: make(map[string]T), nameOf: nameOf, clone: clone, log: l}
}

func cloneBundle(b model.Bundle) model.Bundle {
	b.Players = slices.Clone(b.Players)
	return b
}

func (s *memoryStore) Bundles() storage.Repository[model.Bundle] { return s.bundles }
func (s *memoryStore) Golfers() storage.Repository[model.Golfer] { return s.golfers }
func (s *memoryStore) Close() error                                { return nil }

// items are copied on the way in and out, callers can't modify stored data.
func (r *repo[T]) Save(_ context.Context, item *T) error {
	name, err := storage.CheckName(r.nameOf(item))
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = r.clone(*item)
	r.log.Debug("saved", log.String("name", name))
	return nil
}

func (r *repo[T]) Load(_ context.Context, name string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	item = r.clone(item)
	return &item, nil
}

func (r *repo[T]) List(_ context.Context) ([]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.items)
	slices.Sort(names)
	ret := make([]*T, len(names))
	for i, name := range names {
		item := r.clone(r.items[name])
		ret[i] = &item
	}
	return ret, nil
}

func (r *repo[T]) Delete(_ context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		return 0, nil
	}
	delete(r.items, name)
	return 1, nil
}

func init() {
	factory.Register(StoreTypeMemory, func(context.Context, string) (storage.Store, error) {
		return New(), nil
	})
}
