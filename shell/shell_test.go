package shell

import (
	"bytes"
	"strings"
	"testing"

	"careernav/config"
	"careernav/db"
	"careernav/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seededStore(t *testing.T) db.Store {
	t.Helper()
	data, err := seed.Load("")
	require.NoError(t, err)
	conn, err := db.Bootstrap(config.Config{DBPath: ":memory:"}, zap.NewNop().Sugar(), data)
	require.NoError(t, err)
	return db.NewSQLStore(conn)
}

// runSession feeds a scripted set of commands through the shell and returns
// everything it printed.
func runSession(t *testing.T, commands ...string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(seededStore(t), strings.NewReader(strings.Join(commands, "\n")+"\n"), &out)
	require.NoError(t, sh.Run())
	return out.String()
}

func TestShellTables(t *testing.T) {
	out := runSession(t, "tables", "exit")
	assert.Contains(t, out, "skills")
	assert.Contains(t, out, "roles")
	assert.Contains(t, out, "learning_resources")
}

func TestShellSchemaAndDescribe(t *testing.T) {
	out := runSession(t, "schema skills", "describe skills", "exit")
	assert.Contains(t, out, "CREATE TABLE")
	assert.Contains(t, out, "code")
	assert.Contains(t, out, "primary key")
}

func TestShellCount(t *testing.T) {
	out := runSession(t, "count skills", "exit")
	assert.Contains(t, out, "12")
}

func TestShellQuery(t *testing.T) {
	out := runSession(t,
		"query SELECT code FROM skills WHERE code = 'COMM'",
		"SELECT name FROM roles ORDER BY name LIMIT 1",
		"exit",
	)
	assert.Contains(t, out, "COMM")
	assert.Contains(t, out, "(1 rows)")
}

func TestShellRejectsWrites(t *testing.T) {
	out := runSession(t, "query DELETE FROM skills", "count skills", "exit")
	assert.Contains(t, out, "error:")
	// The loop keeps going and the data is untouched.
	assert.Contains(t, out, "12")
}

func TestShellErrorsKeepLoopAlive(t *testing.T) {
	out := runSession(t,
		"schema no_such_table",
		"bogus",
		"help",
		"exit",
	)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "Commands:")
}

func TestShellExitsOnEOF(t *testing.T) {
	var out bytes.Buffer
	sh := New(seededStore(t), strings.NewReader("tables\n"), &out)
	require.NoError(t, sh.Run())
	assert.Contains(t, out.String(), "skills")
}
