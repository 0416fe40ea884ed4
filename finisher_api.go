package wherex

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/errtranslator"
	"github.com/go-gorm/wherex/logger"
)

var (
	postgresPlaceholder  = regexp.MustCompile(`\$(\d+)`)
	sqlserverPlaceholder = regexp.MustCompile(`@p(\d+)`)
)

// ToSQL renders the statement without executing it
//
//	sql, vars, err := db.Table("users").WhereLike("name", "jane").ToSQL()
//	// mysql: SELECT * FROM `users` WHERE LOWER(`name`) LIKE ?  [%jane%]
func (db *DB) ToSQL() (string, []interface{}, error) {
	tx := db.getInstance()
	if err := tx.prepare(); err != nil {
		return "", nil, err
	}
	return tx.Statement.SQL.String(), tx.Statement.Vars, nil
}

// Explain renders the statement with its bindings inlined, for display only
func (db *DB) Explain() (string, error) {
	query, vars, err := db.ToSQL()
	if err != nil {
		return "", err
	}
	return db.explain(query, vars...), nil
}

func (db *DB) explain(query string, vars ...interface{}) string {
	d := db.Dialect()
	switch d {
	case dialect.PostgreSQL:
		return logger.ExplainSQL(query, postgresPlaceholder, d.Escaper(), vars...)
	case dialect.SQLServer:
		return logger.ExplainSQL(query, sqlserverPlaceholder, d.Escaper(), vars...)
	default:
		return logger.ExplainSQL(query, nil, d.Escaper(), vars...)
	}
}

// Find find records that match given conditions, dest is a pointer to a slice, struct or map
//
//	var products []Product
//	db.WhereJSONContainsAny("tags", "electronics", "books").Find(&products)
func (db *DB) Find(dest interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Dest = dest
	tx.execute(func(ctx context.Context, conn *sqlx.DB, query string, vars []interface{}) (int64, error) {
		rows, err := scan(ctx, conn, dest, query, vars)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return rows, err
	})
	return
}

// First find the first record that matches given conditions, ErrRecordNotFound when there is none
func (db *DB) First(dest interface{}) (tx *DB) {
	tx = db.Limit(1)
	tx.Statement.Dest = dest
	tx.execute(func(ctx context.Context, conn *sqlx.DB, query string, vars []interface{}) (int64, error) {
		rows, err := scan(ctx, conn, dest, query, vars)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && rows == 0) {
			return 0, ErrRecordNotFound
		}
		return rows, err
	})
	return
}

// Count count records that match given conditions, order and limit are ignored
func (db *DB) Count(count *int64) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Selects = []string{"COUNT(*)"}
	tx.Statement.Orders = nil
	tx.Statement.Limit = nil
	tx.execute(func(ctx context.Context, conn *sqlx.DB, query string, vars []interface{}) (int64, error) {
		if err := conn.QueryRowxContext(ctx, query, vars...).Scan(count); err != nil {
			return 0, err
		}
		return 1, nil
	})
	return
}

// prepare resolves the table and renders the statement
func (db *DB) prepare() error {
	stmt := db.Statement
	if stmt.Table == "" {
		model := stmt.Model
		if model == nil {
			model = stmt.Dest
		}

		ns := NamingStrategy{TablePrefix: db.TablePrefix, SingularTable: db.SingularTable}
		table, err := ns.ModelTable(model)
		if err != nil {
			return db.AddError(err)
		}
		stmt.Table = table
	}

	if db.Error != nil {
		return db.Error
	}

	stmt.Build()
	return db.Error
}

type runner func(ctx context.Context, conn *sqlx.DB, query string, vars []interface{}) (int64, error)

func (db *DB) execute(run runner) {
	if err := db.prepare(); err != nil || db.DryRun {
		return
	}

	if db.conn == nil {
		db.AddError(ErrNoConnection)
		return
	}

	var (
		ctx   = db.Statement.Context
		query = db.Statement.SQL.String()
		vars  = db.Statement.Vars
		begin = time.Now()
	)
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := run(ctx, db.conn, query, vars)
	if err != nil && db.TranslateError && !errors.Is(err, ErrRecordNotFound) {
		err = errtranslator.For(db.Dialect()).Translate(err)
	}
	db.RowsAffected = rows
	db.AddError(err)

	db.Logger.Trace(ctx, begin, func() (string, int64) {
		if filter, ok := db.Logger.(logger.ParamsFilter); ok {
			query, vars = filter.ParamsFilter(ctx, query, vars...)
		}
		return db.explain(query, vars...), rows
	}, err)
}

func scan(ctx context.Context, conn *sqlx.DB, dest interface{}, query string, vars []interface{}) (int64, error) {
	switch dest := dest.(type) {
	case *[]map[string]interface{}:
		rows, err := conn.QueryxContext(ctx, query, vars...)
		if err != nil {
			return 0, err
		}
		defer rows.Close()

		for rows.Next() {
			result := map[string]interface{}{}
			if err := rows.MapScan(result); err != nil {
				return int64(len(*dest)), err
			}
			*dest = append(*dest, normalizeMap(result))
		}
		return int64(len(*dest)), rows.Err()
	case *map[string]interface{}:
		result := map[string]interface{}{}
		if err := conn.QueryRowxContext(ctx, query, vars...).MapScan(result); err != nil {
			return 0, err
		}
		*dest = normalizeMap(result)
		return 1, nil
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return 0, ErrInvalidValue
	}

	switch rv.Elem().Kind() {
	case reflect.Slice:
		if err := conn.SelectContext(ctx, dest, query, vars...); err != nil {
			return 0, err
		}
		return int64(rv.Elem().Len()), nil
	case reflect.Map:
		return 0, ErrInvalidValue
	default:
		if err := conn.GetContext(ctx, dest, query, vars...); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

// normalizeMap turns driver []byte values into strings
func normalizeMap(m map[string]interface{}) map[string]interface{} {
	for key, value := range m {
		if b, ok := value.([]byte); ok {
			m[key] = string(b)
		}
	}
	return m
}
