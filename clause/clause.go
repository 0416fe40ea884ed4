package clause

import "github.com/go-gorm/wherex/dialect"

// Writer write writer
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// Builder builder interface
type Builder interface {
	Writer
	WriteQuoted(field interface{})
	Quote(field interface{}) string
	AddVar(Writer, ...interface{})
	AddError(error) error
	Dialect() dialect.Dialect
}

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// NegationExpressionBuilder negation expression builder
type NegationExpressionBuilder interface {
	NegationBuild(builder Builder)
}

// Column quote with name
type Column struct {
	Table string
	Name  string
	Raw   bool
}

// String returns the dot-qualified column name
func (column Column) String() string {
	if column.Table != "" {
		return column.Table + "." + column.Name
	}
	return column.Name
}

// Table quote with name
type Table struct {
	Name  string
	Alias string
	Raw   bool
}
