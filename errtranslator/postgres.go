package errtranslator

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var postgresErrCodes = map[string]error{
	"22P02": ErrMalformedJSON, // invalid_text_representation, raised by ::jsonb
	"42703": ErrUndefinedColumn,
	"42P01": ErrUndefinedTable,
}

// PostgresErrTranslator handles both pgx and lib/pq errors
type PostgresErrTranslator struct{}

func (p *PostgresErrTranslator) Translate(err error) error {
	var code string

	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	default:
		return err
	}

	if kind, ok := postgresErrCodes[code]; ok {
		return TranslatedError{Kind: kind, Code: code, Err: err}
	}
	return err
}
