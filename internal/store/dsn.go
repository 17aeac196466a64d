package store

import (
	"errors"
	"fmt"
	"strings"
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// Target is a parsed connection string.
type Target struct {
	Driver string
	DSN    string
}

// ParseURL maps a connection string onto a registered driver.
//
//	sqlite:numbers.db, sqlite://numbers.db, sqlite::memory:, file:numbers.db, numbers.db
//	duckdb:numbers.duckdb, duckdb://numbers.duckdb
func ParseURL(url string) (Target, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Target{}, errors.New("empty database URL")
	}

	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return sqliteTarget(strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "sqlite:"):
		return sqliteTarget(strings.TrimPrefix(url, "sqlite:"))
	case strings.HasPrefix(url, "duckdb://"):
		return duckdbTarget(strings.TrimPrefix(url, "duckdb://"))
	case strings.HasPrefix(url, "duckdb:"):
		return duckdbTarget(strings.TrimPrefix(url, "duckdb:"))
	case strings.HasPrefix(url, "file:"):
		return sqliteTarget(url)
	}

	if scheme, _, ok := strings.Cut(url, "://"); ok {
		return Target{}, fmt.Errorf("unsupported database scheme %q", scheme)
	}
	return sqliteTarget(url)
}

func sqliteTarget(dsn string) (Target, error) {
	if dsn == "" {
		return Target{}, errors.New("sqlite URL has no path")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)"
	}
	return Target{Driver: DriverSQLite, DSN: dsn}, nil
}

func duckdbTarget(dsn string) (Target, error) {
	if dsn == ":memory:" {
		dsn = ""
	}
	return Target{Driver: DriverDuckDB, DSN: dsn}, nil
}
