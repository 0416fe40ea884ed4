package errtranslator

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
)

// sqlite reports all of them as SQLITE_ERROR, the message tells them apart.
// The first fragment found wins.
var sqliteErrMessages = []struct {
	Fragment string
	Kind     error
}{
	{"malformed JSON", ErrMalformedJSON},
	{"no such column", ErrUndefinedColumn},
	{"no such table", ErrUndefinedTable},
}

type SqliteErrTranslator struct{}

func (s *SqliteErrTranslator) Translate(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	if kind := sqliteErrKind(sqliteErr.Error()); kind != nil {
		return TranslatedError{Kind: kind, Code: sqliteErr.Code(), Err: err}
	}
	return err
}

func sqliteErrKind(msg string) error {
	for _, m := range sqliteErrMessages {
		if strings.Contains(msg, m.Fragment) {
			return m.Kind
		}
	}
	return nil
}
