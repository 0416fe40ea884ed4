package wherex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-gorm/wherex"
	"github.com/go-gorm/wherex/clause"
	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/logger"
)

func forDialect(d dialect.Dialect) *wherex.DB {
	return wherex.ForDialect(d, &wherex.Config{Logger: logger.Discard})
}

func TestToSQL(t *testing.T) {
	results := []struct {
		Name string
		DB   *wherex.DB
		SQL  string
		Vars []interface{}
	}{
		{
			Name: "postgres like with limit",
			DB:   forDialect(dialect.PostgreSQL).Table("users").WhereLike("name", "jane").Limit(10),
			SQL:  `SELECT * FROM "users" WHERE "name" ILIKE $1 LIMIT 10`,
			Vars: []interface{}{"%jane%"},
		},
		{
			Name: "postgres keeps ?| apart from placeholders",
			DB:   forDialect(dialect.PostgreSQL).Table("products").Where("price > ?", 10).WhereJSONContainsAny("tags", "a", "b"),
			SQL:  `SELECT * FROM "products" WHERE price > $1 AND ("tags"::jsonb ?| array[$2, $3]::text[])`,
			Vars: []interface{}{10, "a", "b"},
		},
		{
			Name: "sqlserver top",
			DB:   forDialect(dialect.SQLServer).Table("users").WhereLike("name", "a_b", wherex.EscapeWildcards()).Order("id DESC").Limit(5),
			SQL:  `SELECT TOP (5) * FROM [users] WHERE LOWER([name]) LIKE @p1 ESCAPE '\' ORDER BY id DESC`,
			Vars: []interface{}{`%a\_b%`},
		},
		{
			Name: "mysql case sensitive",
			DB:   forDialect(dialect.MySQL).Table("users").WhereLike("users.name", "Jane", wherex.CaseSensitive()),
			SQL:  "SELECT * FROM `users` WHERE `users`.`name` LIKE BINARY ?",
			Vars: []interface{}{"%Jane%"},
		},
		{
			Name: "sqlite json any",
			DB:   forDialect(dialect.SQLite).Table("products").Select("id", "name").WhereJSONContainsAny("tags", "a", true),
			SQL: "SELECT `id`,`name` FROM `products` WHERE (EXISTS (SELECT 1 FROM json_each(`tags`) WHERE json_each.value = ?) OR " +
				"EXISTS (SELECT 1 FROM json_each(`tags`) WHERE json_each.value = ?))",
			Vars: []interface{}{"a", 1},
		},
		{
			Name: "empty values never match",
			DB:   forDialect(dialect.MySQL).Table("products").WhereJSONContainsAny("tags"),
			SQL:  "SELECT * FROM `products` WHERE 1 = 0",
		},
		{
			Name: "or conditions",
			DB:   forDialect(dialect.MySQL).Table("products").WhereJSONContainsAny("tags", "a").OrWhereLike("name", "b"),
			SQL:  "SELECT * FROM `products` WHERE (JSON_CONTAINS(`tags`, ?)) OR LOWER(`name`) LIKE ?",
			Vars: []interface{}{`"a"`, "%b%"},
		},
		{
			Name: "map conditions are sorted",
			DB:   forDialect(dialect.MySQL).Table("products").Where(map[string]interface{}{"id": []int{1, 2}, "category": "books", "deleted_at": nil}),
			SQL:  "SELECT * FROM `products` WHERE `category` = ? AND `deleted_at` IS NULL AND `id` IN (?,?)",
			Vars: []interface{}{"books", 1, 2},
		},
		{
			Name: "not",
			DB:   forDialect(dialect.MySQL).Table("users").Not("name", "bob").Not(clause.Like{Column: "name", Pattern: "x"}),
			SQL:  "SELECT * FROM `users` WHERE `name` <> ? AND NOT LOWER(`name`) LIKE ?",
			Vars: []interface{}{"bob", "%x%"},
		},
		{
			Name: "raw count column",
			DB:   forDialect(dialect.PostgreSQL).Table("users").Select("COUNT(*)"),
			SQL:  `SELECT COUNT(*) FROM "users"`,
		},
	}

	for _, result := range results {
		t.Run(result.Name, func(t *testing.T) {
			sql, vars, err := result.DB.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, result.SQL, sql)
			assert.Equal(t, result.Vars, vars)
		})
	}
}

func TestGroupConditions(t *testing.T) {
	db := forDialect(dialect.MySQL)

	sql, vars, err := db.Table("products").
		WhereLike("name", "phone").
		Where(db.WhereJSONContainsAny("tags", "a").OrWhereJSONContainsAny("tags", "b")).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `products` WHERE LOWER(`name`) LIKE ? AND ((JSON_CONTAINS(`tags`, ?)) OR (JSON_CONTAINS(`tags`, ?)))", sql)
	assert.Equal(t, []interface{}{"%phone%", `"a"`, `"b"`}, vars)
}

func TestChainsAreIndependent(t *testing.T) {
	base := forDialect(dialect.SQLite).Table("users")
	like := base.WhereLike("name", "a")
	eq := base.Where("id = ?", 1)

	sql, _, err := base.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users`", sql)

	sql, _, err = like.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE LOWER(`name`) LIKE ?", sql)

	sql, vars, err := eq.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE id = ?", sql)
	assert.Equal(t, []interface{}{1}, vars)
}

func TestToSQLErrors(t *testing.T) {
	_, _, err := forDialect(dialect.MySQL).WhereLike("name", "x").ToSQL()
	assert.ErrorIs(t, err, wherex.ErrMissingTable)

	_, _, err = forDialect(dialect.MySQL).Table("products").WhereJSONContainsAny("tags", struct{}{}).ToSQL()
	assert.ErrorIs(t, err, wherex.ErrInvalidArgument)

	_, _, err = forDialect(dialect.MySQL).Table("products").
		WhereLike("bad column", "x").
		WhereJSONContainsAny("tags", []interface{}{[]int{1}}).
		ToSQL()
	assert.ErrorIs(t, err, wherex.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "; ", "errors accumulate")

	_, _, err = forDialect(dialect.MySQL).Table("products").Where(42).ToSQL()
	assert.ErrorIs(t, err, wherex.ErrUnsupportedCondition)

	err = forDialect(dialect.MySQL).Table("products").Find(&[]Product{}).Error
	assert.ErrorIs(t, err, wherex.ErrNoConnection)
}

func TestDryRun(t *testing.T) {
	db := wherex.ForDialect(dialect.PostgreSQL, &wherex.Config{DryRun: true, Logger: logger.Discard})

	tx := db.WhereJSONContainsAny("tags", "electronics").Find(&[]Product{})
	require.NoError(t, tx.Error)
	assert.Equal(t, `SELECT * FROM "products" WHERE ("tags"::jsonb ?| array[$1]::text[])`, tx.Statement.SQL.String())
	assert.Equal(t, []interface{}{"electronics"}, tx.Statement.Vars)
}

func TestExplain(t *testing.T) {
	sql, err := forDialect(dialect.PostgreSQL).Table("products").WhereJSONContainsAny("tags", "electronics", "it's").Explain()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "products" WHERE ("tags"::jsonb ?| array['electronics', 'it''s']::text[])`, sql)

	sql, err = forDialect(dialect.MySQL).Table("users").WhereLike("name", "jane").Explain()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE LOWER(`name`) LIKE \"%jane%\"", sql)

	sql, err = forDialect(dialect.SQLServer).Table("users").WhereLike("name", "jane").Limit(1).Explain()
	require.NoError(t, err)
	assert.Equal(t, `SELECT TOP (1) * FROM [users] WHERE LOWER([name]) LIKE '%jane%'`, sql)
}

func TestModelTableName(t *testing.T) {
	sql, _, err := forDialect(dialect.MySQL).Model(&Product{}).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `products`", sql)

	singular := wherex.ForDialect(dialect.MySQL, &wherex.Config{SingularTable: true, TablePrefix: "shop_", Logger: logger.Discard})
	sql, _, err = singular.Model([]Product{}).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `shop_product`", sql)

	sql, _, err = forDialect(dialect.MySQL).Model(&catalogItem{}).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `catalog`", sql)

	_, _, err = forDialect(dialect.MySQL).Model(42).ToSQL()
	assert.ErrorIs(t, err, wherex.ErrInvalidValue)
}

type catalogItem struct{}

func (catalogItem) TableName() string { return "catalog" }
