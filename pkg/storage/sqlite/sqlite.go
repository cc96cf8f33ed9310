// Package sqlite stores bundles and golfers in a local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/model"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/factory"
)

const (
	StoreTypeSqlite factory.StoreType = "sqlite"
	// DefaultFile is used in the home directory if no dsn is given.
	DefaultFile = ".hcc.db"
)

const schema = `
CREATE TABLE IF NOT EXISTS bundle (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS golfer (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	saved_at TEXT NOT NULL
);
`

type (
	sqliteStore struct {
		db      *sql.DB
		bundles *repo[model.Bundle]
		golfers *repo[model.Golfer]
	}
	repo[T any] struct {
		db      *sql.DB
		table   string
		nameOf  func(*T) string
		savedAt func(*T) time.Time
		log     *log.Logger
	}
)

var _ storage.Store = (*sqliteStore)(nil)

// Open opens (and creates if needed) the database at dsn.
// An empty dsn selects DefaultFile in the home directory.
func Open(ctx context.Context, dsn string) (storage.Store, error) {
	if dsn == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dsn = filepath.Join(home, DefaultFile)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	l := log.Default().Named("storage.sqlite")
	l.Debug("opened database", log.String("dsn", dsn))
	return &sqliteStore{
		db: db,
		bundles: &repo[model.Bundle]{
			db: db, table: "bundle", log: l,
			nameOf:  storage.BundleName,
			savedAt: func(b *model.Bundle) time.Time { return b.SavedAt },
		},
		golfers: &repo[model.Golfer]{
			db: db, table: "golfer", log: l,
			nameOf:  storage.GolferName,
			savedAt: func(g *model.Golfer) time.Time { return g.SavedAt },
		},
	}, nil
}

// InitDB creates the tables.
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) Bundles() storage.Repository[model.Bundle] { return s.bundles }
func (s *sqliteStore) Golfers() storage.Repository[model.Golfer] { return s.golfers }
func (s *sqliteStore) Close() error                                { return s.db.Close() }

func (r *repo[T]) Save(ctx context.Context, item *T) error {
	name, err := storage.CheckName(r.nameOf(item))
	if err != nil {
		return err
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	//nolint:gosec // table name is not user input
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO "+r.table+" (name, data, saved_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(name) DO UPDATE SET data=excluded.data, saved_at=excluded.saved_at",
		name, string(data), r.savedAt(item).UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s %q: %w", r.table, name, err)
	}
	r.log.Debug("saved", log.String("table", r.table), log.String("name", name))
	return nil
}

func (r *repo[T]) Load(ctx context.Context, name string) (*T, error) {
	//nolint:gosec // table name is not user input
	row := r.db.QueryRowContext(ctx, "SELECT data FROM "+r.table+" WHERE name = ?", name)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return decode[T](data)
}

func (r *repo[T]) List(ctx context.Context) ([]*T, error) {
	//nolint:gosec // table name is not user input
	rows, err := r.db.QueryContext(ctx, "SELECT data FROM "+r.table+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []*T
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		item, err := decode[T](data)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func (r *repo[T]) Delete(ctx context.Context, name string) (int, error) {
	//nolint:gosec // table name is not user input
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE name = ?", name)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func decode[T any](data string) (*T, error) {
	var item T
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func init() {
	factory.Register(StoreTypeSqlite, Open)
}
