package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-gorm/wherex"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLikeCommand(t *testing.T) {
	out, _, err := run(t, "like", "name", "JaNe", "--dialect", "postgres", "--table", "users")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM \"users\" WHERE \"name\" ILIKE $1\nbindings: [\"%JaNe%\"]\n", out)

	out, _, err = run(t, "like", "label", "100%", "--escape", "--dialect", "sqlite", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM `records` WHERE LOWER(`label`) LIKE ? ESCAPE '\\'")
	assert.Contains(t, out, "explain: SELECT * FROM `records` WHERE LOWER(`label`) LIKE '%100\\%%' ESCAPE '\\'")

	out, _, err = run(t, "like", "name", "Jane", "--case-sensitive")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM `records` WHERE `name` LIKE BINARY ?")
}

func TestJSONAnyCommand(t *testing.T) {
	out, _, err := run(t, "json-any", "tags", "electronics", "--json", `[2, true, null]`, "--dialect", "sqlserver")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM [records] WHERE (EXISTS (SELECT 1 FROM OPENJSON([tags]) WHERE value = @p1) OR ")
	assert.Contains(t, out, `bindings: ["electronics","2","true","null"]`)

	out, _, err = run(t, "json-any", "tags", "--dialect", "mysql")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM `records` WHERE 1 = 0")

	_, _, err = run(t, "json-any", "tags", "--json", `[{"nested": 1}]`)
	assert.ErrorIs(t, err, wherex.ErrInvalidArgument)

	_, _, err = run(t, "json-any", "tags", "--json", `not json`)
	assert.ErrorContains(t, err, "invalid --json")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("WHEREX_DIALECT", "postgres")
	t.Setenv("WHEREX_LOG_LEVEL", "info")

	out, errOut, err := run(t, "json-any", "tags", "a")
	require.NoError(t, err)
	assert.Contains(t, out, `("tags"::jsonb ?| array[$1]::text[])`)
	assert.Contains(t, errOut, "rendered json-any predicate for postgres")

	out, _, err = run(t, "json-any", "tags", "a", "--dialect", "mysql")
	require.NoError(t, err)
	assert.Contains(t, out, "JSON_CONTAINS(`tags`, ?)", "flags win over the environment")
}

func TestLoggerBackends(t *testing.T) {
	for _, backend := range []string{"default", "zap", "zerolog", "logrus", "slog"} {
		t.Run(backend, func(t *testing.T) {
			_, errOut, err := run(t, "like", "name", "x", "--logger", backend, "--log-level", "info", "--dialect", "clickhouse")
			require.NoError(t, err)
			assert.Contains(t, errOut, "unknown dialect")
			assert.Contains(t, errOut, "clickhouse")
			assert.NotContains(t, errOut, "%q")
			assert.Contains(t, errOut, "rendered")
		})
	}

	_, _, err := run(t, "like", "name", "x", "--logger", "glog")
	assert.ErrorContains(t, err, `unknown logger "glog"`)
}
