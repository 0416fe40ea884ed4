package errtranslator

import (
	"errors"
	"fmt"

	"github.com/go-gorm/wherex/dialect"
)

var (
	// ErrMalformedJSON a JSON column holds text that isn't valid JSON
	ErrMalformedJSON = errors.New("malformed JSON")
	// ErrUndefinedColumn the statement references an unknown column
	ErrUndefinedColumn = errors.New("undefined column")
	// ErrUndefinedTable the statement references an unknown table
	ErrUndefinedTable = errors.New("undefined table")
)

type ErrTranslator interface {
	Translate(err error) error
}

// TranslatedError matches both its sentinel and the driver error with errors.Is and errors.As
type TranslatedError struct {
	Kind error
	Code interface{}
	Err  error
}

func (e TranslatedError) Error() string {
	return fmt.Sprintf("%v, code: %v, message: %v", e.Kind, e.Code, e.Err)
}

func (e TranslatedError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// For returns the translator of d, unknown drivers try every translator
func For(d dialect.Dialect) ErrTranslator {
	switch d {
	case dialect.MySQL:
		return &MysqlErrTranslator{}
	case dialect.PostgreSQL:
		return &PostgresErrTranslator{}
	case dialect.SQLite:
		return &SqliteErrTranslator{}
	case dialect.SQLServer:
		return &MssqlErrTranslator{}
	default:
		return chain{&MysqlErrTranslator{}, &PostgresErrTranslator{}, &SqliteErrTranslator{}, &MssqlErrTranslator{}}
	}
}

type chain []ErrTranslator

func (c chain) Translate(err error) error {
	var translated TranslatedError
	for _, translator := range c {
		if out := translator.Translate(err); errors.As(out, &translated) {
			return out
		}
	}
	return err
}
