// Package config loads the utility's configuration from the environment.
// Components receive an explicit Config; nothing reads env vars after Load.
package config

import "github.com/spf13/viper"

const (
	dbPathEnvVar          = "SQLITE_DB_PATH"
	seedsDirEnvVar        = "SEEDS_DIR"
	viewerAddrEnvVar      = "VIEWER_ADDR"
	viewerRowLimitEnvVar  = "VIEWER_ROW_LIMIT"
	worksheetEnvVar       = "SKILLS_WORKSHEET"
	workspaceCredsEnvVar  = "WORKSPACE_CREDENTIALS_FILE"
	defaultDBPath         = "myapp.db"
	defaultViewerAddr     = ":8080"
	defaultViewerRowLimit = 200
)

// Config carries every setting the bootstrap, shell, and viewer need.
type Config struct {
	// DBPath is the SQLite database file. SQLITE_DB_PATH, default "myapp.db".
	DBPath string

	// SeedsDir holds sfia_skills.json, roles.json, and learning_resources.json.
	// When empty, the seed files embedded in the binary are used.
	SeedsDir string

	// ViewerAddr is the HTTP viewer listen address. VIEWER_ADDR, default ":8080".
	ViewerAddr string

	// ViewerRowLimit caps the rows rendered per table page.
	// VIEWER_ROW_LIMIT, default 200.
	ViewerRowLimit int

	// WorksheetID selects an optional Google Sheets source for skill seeds.
	WorksheetID string

	// CredentialsPath is the service-account credentials file for the
	// worksheet import. Required when WorksheetID is set.
	CredentialsPath string
}

// Load reads the configuration from the environment with defaults applied.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(dbPathEnvVar, defaultDBPath)
	v.SetDefault(viewerAddrEnvVar, defaultViewerAddr)
	v.SetDefault(viewerRowLimitEnvVar, defaultViewerRowLimit)

	return Config{
		DBPath:          v.GetString(dbPathEnvVar),
		SeedsDir:        v.GetString(seedsDirEnvVar),
		ViewerAddr:      v.GetString(viewerAddrEnvVar),
		ViewerRowLimit:  v.GetInt(viewerRowLimitEnvVar),
		WorksheetID:     v.GetString(worksheetEnvVar),
		CredentialsPath: v.GetString(workspaceCredsEnvVar),
	}
}
