// Package postgres stores bundles and golfers in a PostgreSQL database.
// The schema is created by the migrate command.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/handicap-calculator-go/log"
	database "github.com/mpapenbr/handicap-calculator-go/pkg/db/postgres"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/repository"
	bundleRepos "github.com/mpapenbr/handicap-calculator-go/pkg/repository/bundle"
	golferRepos "github.com/mpapenbr/handicap-calculator-go/pkg/repository/golfer"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/factory"
)

const StoreTypePostgres factory.StoreType = "postgres"

type (
	postgresStore struct {
		pool    *pgxpool.Pool
		owned   bool
		bundles *repo[model.Bundle]
		golfers *repo[model.Golfer]
	}
	// repo maps the repository functions of one table to storage.Repository
	repo[T any] struct {
		conn     repository.Querier
		log      *log.Logger
		nameOf   func(*T) string
		upsert   func(context.Context, repository.Querier, *T) error
		load     func(context.Context, repository.Querier, string) (*T, error)
		loadAll  func(context.Context, repository.Querier) ([]*T, error)
		del      func(context.Context, repository.Querier, string) (int, error)
		notFound error
	}
)

var _ storage.Store = (*postgresStore)(nil)

// Open connects to the database at dsn. The pool is closed by Close.
func Open(ctx context.Context, dsn string) (storage.Store, error) {
	l := log.Default().Named("storage.postgres")
	pool, err := database.InitWithURL(ctx, dsn, database.WithTracer(l.Named("sql")))
	if err != nil {
		return nil, err
	}
	s := newStore(pool, l)
	s.owned = true
	return s, nil
}

// New uses an existing pool. Close does not close the pool.
func New(pool *pgxpool.Pool) storage.Store {
	return newStore(pool, log.Default().Named("storage.postgres"))
}

func newStore(pool *pgxpool.Pool, l *log.Logger) *postgresStore {
	return &postgresStore{
		pool: pool,
		bundles: &repo[model.Bundle]{
			conn: pool, log: l, nameOf: storage.BundleName,
			upsert:   bundleRepos.Upsert,
			load:     bundleRepos.LoadByName,
			loadAll:  bundleRepos.LoadAll,
			del:      bundleRepos.DeleteByName,
			notFound: bundleRepos.ErrNotFound,
		},
		golfers: &repo[model.Golfer]{
			conn: pool, log: l, nameOf: storage.GolferName,
			upsert:   golferRepos.Upsert,
			load:     golferRepos.LoadByName,
			loadAll:  golferRepos.LoadAll,
			del:      golferRepos.DeleteByName,
			notFound: golferRepos.ErrNotFound,
		},
	}
}

func (s *postgresStore) Bundles() storage.Repository[model.Bundle] { return s.bundles }
func (s *postgresStore) Golfers() storage.Repository[model.Golfer] { return s.golfers }

func (s *postgresStore) Close() error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}

func (r *repo[T]) Save(ctx context.Context, item *T) error {
	name, err := storage.CheckName(r.nameOf(item))
	if err != nil {
		return err
	}
	if err := r.upsert(ctx, r.conn, item); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	r.log.Debug("saved", log.String("name", name))
	return nil
}

func (r *repo[T]) Load(ctx context.Context, name string) (*T, error) {
	item, err := r.load(ctx, r.conn, name)
	if errors.Is(err, r.notFound) {
		return nil, fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}
	return item, err
}

func (r *repo[T]) List(ctx context.Context) ([]*T, error) {
	return r.loadAll(ctx, r.conn)
}

func (r *repo[T]) Delete(ctx context.Context, name string) (int, error) {
	return r.del(ctx, r.conn, name)
}

func init() {
	factory.Register(StoreTypePostgres, Open)
}
