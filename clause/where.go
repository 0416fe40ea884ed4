package clause

import (
	"regexp"
)

// Where where clause
type Where struct {
	Exprs []Expression
}

// Name where clause name
func (where Where) Name() string {
	return "WHERE"
}

// Build build where clause
func (where Where) Build(builder Builder) {
	exprs := make([]Expression, len(where.Exprs))
	copy(exprs, where.Exprs)

	// Switch position if the first query expression is a single Or condition
	for idx, expr := range exprs {
		if v, ok := expr.(OrConditions); !ok || len(v.Exprs) > 1 {
			if idx != 0 {
				exprs[0], exprs[idx] = exprs[idx], exprs[0]
			}
			break
		}
	}

	buildExprs(exprs, builder, " AND ")
}

var andOrRegexp = regexp.MustCompile(`(?i)\b(AND|OR)\b`)

func needsParentheses(expr Expression) bool {
	switch v := expr.(type) {
	case OrConditions:
		if len(v.Exprs) == 1 {
			return needsParentheses(v.Exprs[0])
		}
	case AndConditions:
		if len(v.Exprs) == 1 {
			return needsParentheses(v.Exprs[0])
		}
	case Expr:
		return andOrRegexp.MatchString(v.SQL)
	}
	return false
}

func buildExprs(exprs []Expression, builder Builder, joinCond string) {
	for idx, expr := range exprs {
		if idx > 0 {
			if v, ok := expr.(OrConditions); ok && len(v.Exprs) == 1 {
				builder.WriteString(" OR ")
			} else {
				builder.WriteString(joinCond)
			}
		}

		if len(exprs) > 1 && needsParentheses(expr) {
			builder.WriteByte('(')
			expr.Build(builder)
			builder.WriteByte(')')
		} else {
			expr.Build(builder)
		}
	}
}

// MergeWhere appends the conditions of other after where's
func (where Where) MergeWhere(other Where) Where {
	exprs := make([]Expression, 0, len(where.Exprs)+len(other.Exprs))
	exprs = append(exprs, where.Exprs...)
	return Where{Exprs: append(exprs, other.Exprs...)}
}

func And(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}

	if len(exprs) == 1 {
		if _, ok := exprs[0].(OrConditions); !ok {
			return exprs[0]
		}
	}

	return AndConditions{Exprs: exprs}
}

type AndConditions struct {
	Exprs []Expression
}

func (and AndConditions) Build(builder Builder) {
	if len(and.Exprs) > 1 {
		builder.WriteByte('(')
		buildExprs(and.Exprs, builder, " AND ")
		builder.WriteByte(')')
	} else {
		buildExprs(and.Exprs, builder, " AND ")
	}
}

func Or(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}
	return OrConditions{Exprs: exprs}
}

type OrConditions struct {
	Exprs []Expression
}

func (or OrConditions) Build(builder Builder) {
	if len(or.Exprs) > 1 {
		builder.WriteByte('(')
		buildExprs(or.Exprs, builder, " OR ")
		builder.WriteByte(')')
	} else {
		buildExprs(or.Exprs, builder, " OR ")
	}
}

func Not(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}
	return NotConditions{Exprs: exprs}
}

type NotConditions struct {
	Exprs []Expression
}

func (not NotConditions) Build(builder Builder) {
	if len(not.Exprs) > 1 {
		builder.WriteByte('(')
	}

	for idx, c := range not.Exprs {
		if idx > 0 {
			builder.WriteString(" AND ")
		}

		if negationBuilder, ok := c.(NegationExpressionBuilder); ok {
			negationBuilder.NegationBuild(builder)
		} else {
			builder.WriteString("NOT ")
			wrap := needsParentheses(c)
			if wrap {
				builder.WriteByte('(')
			}

			c.Build(builder)

			if wrap {
				builder.WriteByte(')')
			}
		}
	}

	if len(not.Exprs) > 1 {
		builder.WriteByte(')')
	}
}
