// Package postgreswrapper abstracts over the journal's database adapters so
// integration tests can run against whichever adapter the ADAPTER_TYPE
// environment variable selects.
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/shelfwise/circulation-go/eventlog/postgresengine"
	"github.com/shelfwise/circulation-go/testutil/postgresengine/config"
)

const tableName = "lending_events"

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper interface to abstract over different adapter types
type Wrapper interface {
	GetJournal() postgresengine.Journal
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool    *pgxpool.Pool
	journal postgresengine.Journal
}

func (w *PGXPoolWrapper) GetJournal() postgresengine.Journal {
	return w.journal
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db      *sql.DB
	journal postgresengine.Journal
}

func (w *SQLDBWrapper) GetJournal() postgresengine.Journal {
	return w.journal
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db      *sqlx.DB
	journal postgresengine.Journal
}

func (w *SQLXWrapper) GetJournal() postgresengine.Journal {
	return w.journal
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// ADAPTER_TYPE environment variable, defaulting to pgx.pool.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	options = append(options, postgresengine.WithTableName(tableName))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		journal, err := postgresengine.NewJournalFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating journal")

		return &PGXPoolWrapper{pool: connPool, journal: journal}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		journal, err := postgresengine.NewJournalFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating journal")

		return &SQLDBWrapper{db: db, journal: journal}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		journal, err := postgresengine.NewJournalFromSQLX(db, options...)
		assert.NoError(t, err, "error creating journal")

		return &SQLXWrapper{db: db, journal: journal}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// TryCreateJournalWithTableName tries to create a journal with the given
// table name and returns the error, for testing table name validation.
func TryCreateJournalWithTableName(t testing.TB, customTableName string) error {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	options := []postgresengine.Option{postgresengine.WithTableName(customTableName)}

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")
		defer connPool.Close()

		_, err = postgresengine.NewJournalFromPGXPool(connPool, options...)
		return err

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		defer func(db *sql.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewJournalFromSQLDB(db, options...)
		return err

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		defer func(db *sqlx.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewJournalFromSQLX(db, options...)
		return err

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CleanUp truncates the journal table for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", tableName)

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), query)
		assert.NoError(t, err, "error cleaning up the journal table")

	case *SQLDBWrapper:
		_, err := w.db.Exec(query)
		assert.NoError(t, err, "error cleaning up the journal table")

	case *SQLXWrapper:
		_, err := w.db.Exec(query)
		assert.NoError(t, err, "error cleaning up the journal table")

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}
}
