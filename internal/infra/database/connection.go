package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names accepted by NewDBConnection, as registered with database/sql.
const (
	DriverPgx    = "pgx"
	DriverPQ     = "postgres"
	DriverSQLite = "sqlite3"
)

// NewDBConnection opens the pool, pings it and creates the schema.
func NewDBConnection(ctx context.Context, driver, connString string) (*sql.DB, error) {
	switch driver {
	case DriverPgx, DriverPQ, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		connString = sqliteDSN(connString)
	}

	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// one connection keeps in-memory databases alive and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN turns on foreign keys for every connection the driver opens,
// not just the first one.
func sqliteDSN(conn string) string {
	if strings.Contains(conn, "_foreign_keys=") || strings.Contains(conn, "_fk=") {
		return conn
	}
	if strings.Contains(conn, "?") {
		return conn + "&_foreign_keys=on"
	}
	return conn + "?_foreign_keys=on"
}
