// shell starts the interactive inspection shell against the configured
// career database. No flags; configuration comes from the environment.
package main

import (
	"fmt"
	"os"

	"careernav/config"
	"careernav/db"
	"careernav/shell"
)

func main() {
	cfg := config.Load()

	if _, err := os.Stat(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "shell: database %s not found, run initdb first\n", cfg.DBPath)
		os.Exit(1)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shell: %v\n", err)
		os.Exit(1)
	}

	sh := shell.New(db.NewSQLStore(conn), os.Stdin, os.Stdout)
	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "shell: %v\n", err)
		os.Exit(1)
	}
}
