package testdb

import (
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/mpapenbr/handicap-calculator-go/testsupport/tcpostgres"
)

// InitTestDb returns a migrated, empty test database.
// TESTDB_URL selects an external database instead of a container.
func InitTestDb() *pgxpool.Pool {
	var pool *pgxpool.Pool

	if os.Getenv("TESTDB_URL") != "" {
		pool = tcpg.SetupExternalTestDb()
	} else {
		pool = tcpg.SetupTestDb()
	}
	if err := tcpg.ClearAllTables(pool); err != nil {
		log.Fatalf("initTestDb: %v\n", err)
	}
	return pool
}
