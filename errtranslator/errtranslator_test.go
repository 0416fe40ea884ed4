package errtranslator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"

	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/errtranslator"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		Dialect dialect.Dialect
		Err     error
		Kind    error
	}{
		{dialect.MySQL, &mysql.MySQLError{Number: 3141, Message: "Invalid JSON text in argument 1 to function json_contains"}, errtranslator.ErrMalformedJSON},
		{dialect.MySQL, &mysql.MySQLError{Number: 1054, Message: "Unknown column 'tag' in 'where clause'"}, errtranslator.ErrUndefinedColumn},
		{dialect.MySQL, fmt.Errorf("query: %w", &mysql.MySQLError{Number: 1146}), errtranslator.ErrUndefinedTable},
		{dialect.PostgreSQL, &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type json"}, errtranslator.ErrMalformedJSON},
		{dialect.PostgreSQL, &pq.Error{Code: "42703"}, errtranslator.ErrUndefinedColumn},
		{dialect.PostgreSQL, &pgconn.PgError{Code: "42P01"}, errtranslator.ErrUndefinedTable},
		{dialect.SQLServer, mssql.Error{Number: 13609, Message: "JSON text is not properly formatted."}, errtranslator.ErrMalformedJSON},
		{dialect.SQLServer, mssql.Error{Number: 207}, errtranslator.ErrUndefinedColumn},
		{dialect.Unknown, &pgconn.PgError{Code: "42P01"}, errtranslator.ErrUndefinedTable},
		{dialect.Unknown, &mysql.MySQLError{Number: 1054}, errtranslator.ErrUndefinedColumn},
	}

	for idx, test := range tests {
		err := errtranslator.For(test.Dialect).Translate(test.Err)
		assert.ErrorIs(t, err, test.Kind, "#%d", idx)

		var translated errtranslator.TranslatedError
		if assert.ErrorAs(t, err, &translated, "#%d", idx) {
			assert.Equal(t, test.Err, translated.Err, "#%d keeps the driver error", idx)
		}
	}
}

func TestTranslateKeepsOtherErrors(t *testing.T) {
	unique := &mysql.MySQLError{Number: 1062}
	assert.Same(t, unique, errtranslator.For(dialect.MySQL).Translate(unique))

	plain := errors.New("connection refused")
	for _, d := range []dialect.Dialect{dialect.Unknown, dialect.MySQL, dialect.PostgreSQL, dialect.SQLite, dialect.SQLServer} {
		assert.Equal(t, plain, errtranslator.For(d).Translate(plain), d.String())
	}

	// a postgres error reaching the mysql translator is left alone
	pgErr := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(pgErr), errtranslator.For(dialect.MySQL).Translate(pgErr))
}

func TestTranslatedErrorAs(t *testing.T) {
	err := errtranslator.For(dialect.MySQL).Translate(&mysql.MySQLError{Number: 3140, Message: "Invalid JSON text"})

	var translated errtranslator.TranslatedError
	if assert.True(t, errors.As(err, &translated)) {
		assert.Equal(t, uint16(3140), translated.Code)
	}

	var mysqlErr *mysql.MySQLError
	if assert.True(t, errors.As(err, &mysqlErr)) {
		assert.Equal(t, "Invalid JSON text", mysqlErr.Message)
	}
	assert.Contains(t, err.Error(), "malformed JSON")
}
