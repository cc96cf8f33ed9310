// Package natskv stores bundles and golfers in NATS JetStream key value buckets.
package natskv

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/lo"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/factory"
)

const (
	StoreTypeNats factory.StoreType = "nats"

	BundleBucket = "hcc_bundles"
	GolferBucket = "hcc_golfers"
)

type (
	natsStore struct {
		nc      *nats.Conn
		owned   bool
		bundles *repo[model.Bundle]
		golfers *repo[model.Golfer]
	}
	repo[T any] struct {
		kv     jetstream.KeyValue
		nameOf func(*T) string
		log    *log.Logger
	}
)

var _ storage.Store = (*natsStore)(nil)

// Open connects to the NATS server at url. The connection is closed by Close.
func Open(ctx context.Context, url string) (storage.Store, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url, nats.Name("hcc"))
	if err != nil {
		return nil, err
	}
	s, err := newStore(ctx, nc)
	if err != nil {
		nc.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New uses an existing connection. Close does not close the connection.
func New(ctx context.Context, nc *nats.Conn) (storage.Store, error) {
	return newStore(ctx, nc)
}

func newStore(ctx context.Context, nc *nats.Conn) (*natsStore, error) {
	l := log.Default().Named("storage.nats")
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}
	bundles, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      BundleBucket,
		Description: "saved calculation bundles",
	})
	if err != nil {
		return nil, err
	}
	golfers, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      GolferBucket,
		Description: "saved golfers",
	})
	if err != nil {
		return nil, err
	}
	l.Debug("Initialized NATS storage", log.String("url", nc.ConnectedUrl()))
	return &natsStore{
		nc:      nc,
		bundles: &repo[model.Bundle]{kv: bundles, nameOf: storage.BundleName, log: l},
		golfers: &repo[model.Golfer]{kv: golfers, nameOf: storage.GolferName, log: l},
	}, nil
}

func (s *natsStore) Bundles() storage.Repository[model.Bundle] { return s.bundles }
func (s *natsStore) Golfers() storage.Repository[model.Golfer] { return s.golfers }

func (s *natsStore) Close() error {
	if s.owned {
		return s.nc.Drain()
	}
	return nil
}

// names may contain characters that are not valid in keys
func composeKey(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

func (r *repo[T]) Save(ctx context.Context, item *T) error {
	name, err := storage.CheckName(r.nameOf(item))
	if err != nil {
		return err
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if _, err := r.kv.Put(ctx, composeKey(name), data); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	r.log.Debug("saved", log.String("bucket", r.kv.Bucket()), log.String("name", name))
	return nil
}

func (r *repo[T]) Load(ctx context.Context, name string) (*T, error) {
	return r.get(ctx, composeKey(name))
}

func (r *repo[T]) get(ctx context.Context, key string) (*T, error) {
	kve, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	var item T
	if err := json.Unmarshal(kve.Value(), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo[T]) List(ctx context.Context) ([]*T, error) {
	lister, err := r.kv.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	defer lister.Stop() //nolint:errcheck // nothing to do
	var ret []*T
	for key := range lister.Keys() {
		item, err := r.get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue // deleted meanwhile
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return sortByName(ret, r.nameOf), nil
}

func (r *repo[T]) Delete(ctx context.Context, name string) (int, error) {
	key := composeKey(name)
	if _, err := r.kv.Get(ctx, key); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if err := r.kv.Delete(ctx, key); err != nil {
		return 0, err
	}
	return 1, nil
}

func sortByName[T any](items []*T, nameOf func(*T) string) []*T {
	byName := lo.KeyBy(items, nameOf)
	keys := lo.Keys(byName)
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) *T { return byName[k] })
}

func init() {
	factory.Register(StoreTypeNats, Open)
}
