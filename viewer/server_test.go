package viewer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"careernav/config"
	"careernav/db"
	"careernav/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	data, err := seed.Load("")
	require.NoError(t, err)
	conn, err := db.Bootstrap(config.Config{DBPath: ":memory:"}, zap.NewNop().Sugar(), data)
	require.NoError(t, err)
	return New(db.NewSQLStore(conn), zap.NewNop().Sugar(), 50)
}

func get(t *testing.T, srv *Server, target string) (*http.Response, string) {
	t.Helper()
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	resp, body := get(t, testServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestIndexListsTables(t *testing.T) {
	resp, body := get(t, testServer(t), "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "skills")
	assert.Contains(t, body, "roles")
	assert.Contains(t, body, `href="/tables/skills"`)
}

func TestTablePage(t *testing.T) {
	resp, body := get(t, testServer(t), "/tables/skills")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "COMM")
	assert.Contains(t, body, "Communication")
}

func TestTablePageLimit(t *testing.T) {
	srv := testServer(t)

	// Unordered SELECT returns rowid order, so the single row is the first
	// seeded skill.
	_, body := get(t, srv, "/tables/skills?limit=1")
	assert.Contains(t, body, "PROG")
	assert.NotContains(t, body, "COMM")

	// A limit above the configured cap falls back to the cap rather than
	// letting the client dump arbitrarily many rows.
	resp, _ := get(t, srv, "/tables/skills?limit=99999")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownTableIs404(t *testing.T) {
	resp, body := get(t, testServer(t), "/tables/no_such_table")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "no such table")
}
