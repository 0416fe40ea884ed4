package errtranslator

import (
	"errors"

	mssql "github.com/microsoft/go-mssqldb"
)

var mssqlErrCodes = map[int32]error{
	207:   ErrUndefinedColumn,
	208:   ErrUndefinedTable,
	13609: ErrMalformedJSON,
}

type MssqlErrTranslator struct{}

func (m *MssqlErrTranslator) Translate(err error) error {
	var mssqlErr mssql.Error
	if !errors.As(err, &mssqlErr) {
		return err
	}

	if kind, ok := mssqlErrCodes[mssqlErr.Number]; ok {
		return TranslatedError{Kind: kind, Code: mssqlErr.Number, Err: err}
	}
	return err
}
