package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"careernav/config"
	"careernav/model"
	"careernav/seed"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite file and configures the connection for this
// utility's single-writer usage: one pooled connection, WAL, foreign keys on.
func Open(cfg config.Config) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access DB pool: %w", err)
	}
	// A single connection keeps the session pragmas effective and avoids
	// SQLite lock contention between gorm's pooled connections.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("exec %q: %w", pragma, err)
		}
	}
	return db, nil
}

// Bootstrap creates the full schema and, when data is non-nil, runs the
// idempotent seeding pass inside a single transaction. Re-running against an
// existing database converges to the same row set.
func Bootstrap(cfg config.Config, logger *zap.SugaredLogger, data *seed.Data) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Skill{},
		&model.Role{},
		&model.RoleSkillRequirement{},
		&model.UserSkill{},
		&model.UserProgress{},
		&model.LearningResource{},
		&model.LearningResourceSkill{},
		&model.CareerPath{},
		&model.Recommendation{},
	); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	if data == nil {
		logger.Infow("bootstrap: schema created, no seed data loaded", "db", cfg.DBPath)
		return db, nil
	}

	if err := Seed(db, logger, data); err != nil {
		return nil, fmt.Errorf("bootstrap: seeding failed: %w", err)
	}

	logger.Infow("bootstrap: completed", "db", cfg.DBPath)
	return db, nil
}
