package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "myapp.db", cfg.DBPath)
	assert.Empty(t, cfg.SeedsDir)
	assert.Equal(t, ":8080", cfg.ViewerAddr)
	assert.Equal(t, 200, cfg.ViewerRowLimit)
	assert.Empty(t, cfg.WorksheetID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SQLITE_DB_PATH", "/tmp/career.db")
	t.Setenv("SEEDS_DIR", "/srv/seeds")
	t.Setenv("VIEWER_ADDR", "127.0.0.1:9999")
	t.Setenv("VIEWER_ROW_LIMIT", "25")
	t.Setenv("SKILLS_WORKSHEET", "sheet-id")
	t.Setenv("WORKSPACE_CREDENTIALS_FILE", "/etc/creds.json")

	cfg := Load()

	assert.Equal(t, "/tmp/career.db", cfg.DBPath)
	assert.Equal(t, "/srv/seeds", cfg.SeedsDir)
	assert.Equal(t, "127.0.0.1:9999", cfg.ViewerAddr)
	assert.Equal(t, 25, cfg.ViewerRowLimit)
	assert.Equal(t, "sheet-id", cfg.WorksheetID)
	assert.Equal(t, "/etc/creds.json", cfg.CredentialsPath)
}
