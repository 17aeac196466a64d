package store

import "fmt"

// Column names of the counter table.
const (
	ColumnID            = "id"
	ColumnDirectoryName = "directory_name"
	ColumnCurrentNumber = "current_number"
)

func schemaSQL(driver, table string) []string {
	quoted := quoteIdent(table)
	if driver == DriverDuckDB {
		seq := quoteIdent(table + "_id_seq")
		return []string{
			fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS %s START 1`, seq),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id              BIGINT DEFAULT nextval('%s') PRIMARY KEY,
    directory_name  VARCHAR NOT NULL UNIQUE,
    current_number  BIGINT NOT NULL DEFAULT 0 CHECK (current_number >= 0)
)`, quoted, table+"_id_seq"),
		}
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    directory_name  TEXT NOT NULL UNIQUE,
    current_number  INTEGER NOT NULL DEFAULT 0 CHECK (current_number >= 0)
)`, quoted),
	}
}

// queries holds the statements for one table, built once at Open.
type queries struct {
	ensure  string
	fetch   string
	persist string
}

func buildQueries(table string) queries {
	t := quoteIdent(table)
	return queries{
		ensure: fmt.Sprintf(`INSERT INTO %s (directory_name, current_number)
		SELECT CAST(? AS VARCHAR), CAST(? AS BIGINT)
		WHERE NOT EXISTS (SELECT 1 FROM %s WHERE directory_name = ?)`, t, t),
		fetch: fmt.Sprintf(`SELECT id, directory_name, current_number
		FROM %s WHERE directory_name = ? ORDER BY id LIMIT 1`, t),
		persist: fmt.Sprintf(`UPDATE %s SET current_number = ? WHERE directory_name = ?`, t),
	}
}
