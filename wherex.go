// Package wherex is a small gorm flavoured SELECT builder whose WhereLike and
// WhereJSONContainsAny conditions compile to the right SQL for MySQL,
// PostgreSQL, SQLite and SQL Server.
//
//	db, err := wherex.Open("sqlite", "file:shop.db", &wherex.Config{})
//	var products []Product
//	err = db.WhereJSONContainsAny("tags", "electronics", "books").
//		OrWhereLike("name", "phone").
//		Find(&products).Error
package wherex

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"

	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/logger"
)

// Config wherex config
type Config struct {
	// Dialect overrides the dialect discovered from the driver
	Dialect dialect.Dialect
	// Logger
	Logger logger.Interface
	// DryRun builds statements without executing them
	DryRun bool
	// TranslateError maps driver errors to errtranslator sentinels like ErrMalformedJSON
	TranslateError bool

	// SingularTable use singular table name, by default table names are pluralized
	SingularTable bool
	// TablePrefix prepended to table names derived from models
	TablePrefix string
}

// DB wherex DB definition
type DB struct {
	*Config
	Error        error
	RowsAffected int64
	Statement    *Statement

	conn *sqlx.DB
}

// Open opens a database/sql handle and wraps it, the handle is closed by Close
func Open(driverName, dsn string, config *Config) (*DB, error) {
	conn, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return newDB(conn, driverName, config), nil
}

// New wraps a caller owned database/sql handle
func New(sqlDB *sql.DB, driverName string, config *Config) (*DB, error) {
	if sqlDB == nil {
		return nil, ErrNoConnection
	}
	return newDB(sqlx.NewDb(sqlDB, driverName), driverName, config), nil
}

// ForDialect returns a DB that renders statements for d but can't execute them
func ForDialect(d dialect.Dialect, config *Config) *DB {
	config = normalizeConfig(config)
	if config.Dialect == dialect.Unknown {
		config.Dialect = d
	}
	return initDB(config, nil)
}

func normalizeConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	} else {
		c := *config
		config = &c
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}
	return config
}

func newDB(conn *sqlx.DB, driverName string, config *Config) *DB {
	config = normalizeConfig(config)
	if config.Dialect == dialect.Unknown {
		if config.Dialect = dialect.Of(conn.Driver()); config.Dialect == dialect.Unknown {
			config.Dialect = dialect.Parse(driverName)
		}

		if config.Dialect == dialect.Unknown {
			config.Logger.Warn(context.Background(), "unknown driver %q, compiling predicates with mysql templates", driverName)
		}
	}

	conn.Mapper = reflectx.NewMapperFunc("db", toDBName)
	return initDB(config, conn)
}

func initDB(config *Config, conn *sqlx.DB) *DB {
	db := &DB{Config: config, conn: conn}
	db.Statement = &Statement{DB: db, Context: context.Background()}
	return db
}

// Dialect returns the dialect statements are compiled for
func (db *DB) Dialect() dialect.Dialect {
	return db.Config.Dialect
}

// DB returns the wrapped database/sql handle, nil for ForDialect
func (db *DB) DB() *sql.DB {
	if db.conn == nil {
		return nil
	}
	return db.conn.DB
}

// Close closes the database handle
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// AddError add error to db
func (db *DB) AddError(err error) error {
	if err == nil {
		return db.Error
	}

	if db.Error == nil {
		db.Error = err
	} else {
		db.Error = fmt.Errorf("%v; %w", db.Error, err)
	}
	return db.Error
}

// getInstance returns a copy of db, chains never share a statement
func (db *DB) getInstance() *DB {
	tx := &DB{Config: db.Config, Error: db.Error, conn: db.conn}
	tx.Statement = db.Statement.clone(tx)
	return tx
}
