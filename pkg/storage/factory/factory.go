package factory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
)

type (
	StoreType string
	// Creator opens a store. The meaning of dsn depends on the store type.
	Creator func(ctx context.Context, dsn string) (storage.Store, error)
)

var ErrStoreTypeNotSupported = errors.New("store type not supported")

var registry = map[StoreType]Creator{}

// Register a store implementation
func Register(key StoreType, creator Creator) {
	registry[key] = creator
}

// New opens a store of the registered type
func New(ctx context.Context, key StoreType, dsn string) (storage.Store, error) {
	creator, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStoreTypeNotSupported, key)
	}
	return creator(ctx, dsn)
}

// Types returns the registered store types
func Types() []StoreType {
	ret := lo.Keys(registry)
	slices.Sort(ret)
	return ret
}
