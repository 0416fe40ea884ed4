package errtranslator

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var mysqlErrCodes = map[uint16]error{
	1054: ErrUndefinedColumn,
	1146: ErrUndefinedTable,
	3140: ErrMalformedJSON,
	3141: ErrMalformedJSON,
}

type MysqlErrTranslator struct{}

func (m *MysqlErrTranslator) Translate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	if kind, ok := mysqlErrCodes[mysqlErr.Number]; ok {
		return TranslatedError{Kind: kind, Code: mysqlErr.Number, Err: err}
	}
	return err
}
