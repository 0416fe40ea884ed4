package wherex

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gorm/wherex/clause"
	"github.com/go-gorm/wherex/dialect"
)

// Statement statement
type Statement struct {
	DB      *DB
	Table   string
	Model   interface{}
	Dest    interface{}
	Selects []string
	Where   clause.Where
	Orders  []string
	Limit   *int
	Context context.Context

	// SQL Builder
	SQL  strings.Builder
	Vars []interface{}
}

func (stmt *Statement) clone(db *DB) *Statement {
	newStmt := &Statement{
		DB:      db,
		Table:   stmt.Table,
		Model:   stmt.Model,
		Dest:    stmt.Dest,
		Selects: append([]string(nil), stmt.Selects...),
		Where:   clause.Where{Exprs: append([]clause.Expression(nil), stmt.Where.Exprs...)},
		Orders:  append([]string(nil), stmt.Orders...),
		Context: stmt.Context,
	}

	if stmt.Limit != nil {
		limit := *stmt.Limit
		newStmt.Limit = &limit
	}
	return newStmt
}

// Dialect returns the dialect of the statement's DB
func (stmt *Statement) Dialect() dialect.Dialect {
	return stmt.DB.Config.Dialect
}

// WriteString write string
func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// WriteQuoted write quoted value
func (stmt *Statement) WriteQuoted(value interface{}) {
	stmt.QuoteTo(&stmt.SQL, value)
}

// Quote returns quoted value
func (stmt *Statement) Quote(field interface{}) string {
	var builder strings.Builder
	stmt.QuoteTo(&builder, field)
	return builder.String()
}

// QuoteTo write quoted value to writer, strings holding an expression like COUNT(*) are written raw
func (stmt *Statement) QuoteTo(writer clause.Writer, field interface{}) {
	d := stmt.Dialect()

	switch v := field.(type) {
	case clause.Table:
		if v.Raw {
			writer.WriteString(v.Name)
		} else {
			writer.WriteString(d.Quote(v.Name))
		}

		if v.Alias != "" {
			writer.WriteString(" AS ")
			writer.WriteString(d.Quote(v.Alias))
		}
	case clause.Column:
		if v.Raw {
			writer.WriteString(v.String())
		} else {
			writer.WriteString(d.Quote(v.String()))
		}
	case string:
		if strings.ContainsAny(v, " ()") {
			writer.WriteString(v)
		} else {
			writer.WriteString(d.Quote(v))
		}
	default:
		writer.WriteString(d.Quote(fmt.Sprint(field)))
	}
}

// AddVar add var
func (stmt *Statement) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}

		switch v := v.(type) {
		case clause.Column, clause.Table:
			stmt.QuoteTo(writer, v)
		case clause.Expression:
			v.Build(stmt)
		case []byte:
			stmt.bindVar(writer, v)
		case []interface{}:
			if len(v) > 0 {
				stmt.AddVar(writer, v...)
			} else {
				writer.WriteString("NULL")
			}
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				if rv.Len() == 0 {
					writer.WriteString("NULL")
				} else {
					for i := 0; i < rv.Len(); i++ {
						if i > 0 {
							writer.WriteByte(',')
						}
						stmt.AddVar(writer, rv.Index(i).Interface())
					}
				}
			} else {
				stmt.bindVar(writer, v)
			}
		}
	}
}

func (stmt *Statement) bindVar(writer clause.Writer, v interface{}) {
	stmt.Vars = append(stmt.Vars, v)
	writer.WriteString(stmt.Dialect().BindVar(len(stmt.Vars)))
}

// AddError add error to the statement's DB
func (stmt *Statement) AddError(err error) error {
	return stmt.DB.AddError(err)
}

// AddWhere appends conditions, disjunctive conditions are joined with OR
func (stmt *Statement) AddWhere(disjunctive bool, exprs ...clause.Expression) {
	if len(exprs) == 0 {
		return
	}

	if disjunctive {
		stmt.Where.Exprs = append(stmt.Where.Exprs, clause.Or(clause.And(exprs...)))
	} else {
		stmt.Where.Exprs = append(stmt.Where.Exprs, exprs...)
	}
}

// Build renders the SELECT statement into SQL and Vars
func (stmt *Statement) Build() {
	stmt.SQL.Reset()
	stmt.Vars = nil

	if stmt.Table == "" {
		stmt.AddError(ErrMissingTable)
		return
	}

	stmt.WriteString("SELECT ")
	if stmt.Limit != nil && stmt.Dialect() == dialect.SQLServer {
		stmt.WriteString("TOP (" + strconv.Itoa(*stmt.Limit) + ") ")
	}

	if len(stmt.Selects) == 0 {
		stmt.WriteByte('*')
	} else {
		for idx, column := range stmt.Selects {
			if idx > 0 {
				stmt.WriteByte(',')
			}
			stmt.WriteQuoted(column)
		}
	}

	stmt.WriteString(" FROM ")
	stmt.WriteQuoted(clause.Table{Name: stmt.Table})

	if len(stmt.Where.Exprs) > 0 {
		stmt.WriteString(" WHERE ")
		stmt.Where.Build(stmt)
	}

	if len(stmt.Orders) > 0 {
		stmt.WriteString(" ORDER BY ")
		stmt.WriteString(strings.Join(stmt.Orders, ","))
	}

	if stmt.Limit != nil && stmt.Dialect() != dialect.SQLServer {
		stmt.WriteString(" LIMIT " + strconv.Itoa(*stmt.Limit))
	}
}

// BuildCondition build condition
func (stmt *Statement) BuildCondition(query interface{}, args ...interface{}) []clause.Expression {
	switch v := query.(type) {
	case string:
		if len(args) > 0 && !strings.Contains(v, "?") && !strings.ContainsAny(v, " ()=<>") {
			// Where("name", "jinzhu")
			if len(args) == 1 {
				return []clause.Expression{clause.Eq{Column: v, Value: args[0]}}
			}
			return []clause.Expression{clause.IN{Column: v, Values: args}}
		}
		return []clause.Expression{clause.Expr{SQL: v, Vars: args}}
	case clause.Expression:
		conds := []clause.Expression{v}
		for _, arg := range args {
			if expr, ok := arg.(clause.Expression); ok {
				conds = append(conds, expr)
			} else {
				stmt.AddError(fmt.Errorf("%w: %T", ErrUnsupportedCondition, arg))
			}
		}
		return conds
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		conds := make([]clause.Expression, 0, len(keys))
		for _, key := range keys {
			rv := reflect.ValueOf(v[key])
			if v[key] != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
				values := make([]interface{}, rv.Len())
				for i := range values {
					values[i] = rv.Index(i).Interface()
				}
				conds = append(conds, clause.IN{Column: key, Values: values})
			} else {
				conds = append(conds, clause.Eq{Column: key, Value: v[key]})
			}
		}
		return conds
	case *DB:
		if v.Error != nil {
			stmt.AddError(v.Error)
		}
		if len(v.Statement.Where.Exprs) == 0 {
			return nil
		}
		return []clause.Expression{clause.And(v.Statement.Where.Exprs...)}
	default:
		stmt.AddError(fmt.Errorf("%w: %T", ErrUnsupportedCondition, query))
		return nil
	}
}
