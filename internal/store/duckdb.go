package store

import (
	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
)
