package wherex

import (
	"errors"

	"github.com/go-gorm/wherex/errtranslator"
	"github.com/go-gorm/wherex/logger"
	"github.com/go-gorm/wherex/predicate"
)

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = logger.ErrRecordNotFound
	// ErrInvalidArgument invalid column or value passed to a predicate
	ErrInvalidArgument = predicate.ErrInvalidArgument
	// ErrNoConnection statement can't be executed without a database handle
	ErrNoConnection = errors.New("no database connection")
	// ErrMissingTable table name required
	ErrMissingTable = errors.New("table name required, use Table or Model")
	// ErrInvalidValue destination must be a pointer
	ErrInvalidValue = errors.New("invalid value, should be pointer to struct, slice or map")
	// ErrUnsupportedCondition unsupported condition type
	ErrUnsupportedCondition = errors.New("unsupported condition")

	// ErrMalformedJSON returned with Config.TranslateError when a JSON column holds invalid JSON
	ErrMalformedJSON = errtranslator.ErrMalformedJSON
	// ErrUndefinedColumn returned with Config.TranslateError for unknown columns
	ErrUndefinedColumn = errtranslator.ErrUndefinedColumn
	// ErrUndefinedTable returned with Config.TranslateError for unknown tables
	ErrUndefinedTable = errtranslator.ErrUndefinedTable
)
