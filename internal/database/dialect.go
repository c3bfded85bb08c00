package database

import (
	"fmt"
	"regexp"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Dialect captures the SQL differences between the supported drivers.
// Queries are written with PostgreSQL $N placeholders.
type Dialect struct {
	Driver string
}

var (
	Postgres = Dialect{Driver: DriverPostgres}
	SQLite   = Dialect{Driver: DriverSQLite}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres, "":
		return Postgres, nil
	case DriverSQLite, "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders into the driver's form. SQLite binds ?N
// by position, so the numbering is preserved.
func (d Dialect) Rebind(query string) string {
	if d.Driver != DriverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?$1")
}

// ForUpdate returns the row lock clause appended to SELECTs that read rows
// about to be rewritten. SQLite locks the whole database on write instead.
func (d Dialect) ForUpdate() string {
	if d.Driver == DriverSQLite {
		return ""
	}
	return " FOR UPDATE"
}
