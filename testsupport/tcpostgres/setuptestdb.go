//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/handicap-calculator-go/pkg/db/migrate"
	database "github.com/mpapenbr/handicap-calculator-go/pkg/db/postgres"
	"github.com/mpapenbr/handicap-calculator-go/pkg/repository"
)

// SetupTestDb starts (or reuses) the test container and returns a pool
// for the migrated database.
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	container, err := SetupPostgres(ctx,
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
		WithName("handicap-calculator-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	dbURL, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatal(err)
	}
	return setupWithURL(dbURL)
}

// SetupExternalTestDb uses the database given by TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	return setupWithURL(os.Getenv("TESTDB_URL"))
}

func setupWithURL(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithURL(context.Background(), dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

// ClearAllTables empties all tables in one transaction.
func ClearAllTables(pool *pgxpool.Pool) error {
	return repository.InTx(context.Background(), pool, func(q repository.Querier) error {
		for _, table := range []string{"bundle", "golfer"} {
			if _, err := q.Exec(context.Background(), "delete from "+table); err != nil {
				return err
			}
		}
		return nil
	})
}
