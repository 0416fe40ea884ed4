package dialect

import (
	"database/sql/driver"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"modernc.org/sqlite"
)

// Dialect sql dialect a fragment is compiled for
type Dialect int

const (
	// Unknown compiles with the MySQL shaped templates
	Unknown Dialect = iota
	MySQL
	PostgreSQL
	SQLite
	SQLServer
)

// String returns the dialect name
func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case PostgreSQL:
		return "postgres"
	case SQLite:
		return "sqlite"
	case SQLServer:
		return "sqlserver"
	default:
		return "unknown"
	}
}

// Parse returns the dialect of a database/sql driver name
func Parse(driverName string) Dialect {
	switch strings.ToLower(strings.TrimSpace(driverName)) {
	case "mysql", "mariadb", "tidb":
		return MySQL
	case "postgres", "postgresql", "pgx", "pgx/v5", "cockroach", "cockroachdb":
		return PostgreSQL
	case "sqlite", "sqlite3":
		return SQLite
	case "sqlserver", "mssql", "azuresql":
		return SQLServer
	default:
		return Unknown
	}
}

// Of returns the dialect of a registered driver, Unknown for drivers it doesn't know
func Of(drv driver.Driver) Dialect {
	switch drv.(type) {
	case *mysql.MySQLDriver:
		return MySQL
	case *pq.Driver, *stdlib.Driver:
		return PostgreSQL
	case *sqlite.Driver:
		return SQLite
	case *mssql.Driver:
		return SQLServer
	default:
		return Unknown
	}
}

func (d Dialect) quoteChars() (byte, byte) {
	switch d {
	case PostgreSQL:
		return '"', '"'
	case SQLServer:
		return '[', ']'
	default:
		// sqlite reads a double quoted name that is no column as a string literal
		return '`', '`'
	}
}

// Quote quotes a possibly dot-qualified identifier, e.g. users.name -> `users`.`name`
func (d Dialect) Quote(name string) string {
	var builder strings.Builder
	d.QuoteTo(&builder, name)
	return builder.String()
}

// QuoteTo writes the quoted identifier to builder
func (d Dialect) QuoteTo(builder *strings.Builder, name string) {
	left, right := d.quoteChars()

	for idx, part := range strings.Split(name, ".") {
		if idx > 0 {
			builder.WriteByte('.')
		}

		if part == "*" {
			builder.WriteByte('*')
			continue
		}

		builder.WriteByte(left)
		for i := 0; i < len(part); i++ {
			if part[i] == right {
				builder.WriteByte(right)
			}
			builder.WriteByte(part[i])
		}
		builder.WriteByte(right)
	}
}

// BindVar returns the placeholder of the n-th (1 based) bound value
func (d Dialect) BindVar(n int) string {
	switch d {
	case PostgreSQL:
		return "$" + strconv.Itoa(n)
	case SQLServer:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// Escaper returns the string literal quote used when explaining sql
func (d Dialect) Escaper() string {
	switch d {
	case MySQL, Unknown:
		return `"`
	default:
		return `'`
	}
}
