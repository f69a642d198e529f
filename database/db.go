package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hughdickinson/DCWConsensus/config"
	"github.com/hughdickinson/DCWConsensus/models"
)

var DB *gorm.DB

// InitDB opens the consensus database described by cfg.
func InitDB(cfg config.DatabaseConfig, logger *zap.Logger) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db
	logger.Info("Database connected", zap.String("path", cfg.Path))
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// Open connects to the SQLite database at cfg.Path.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Path, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

// Migrate creates or updates the consensus tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Subject{},
		&models.SubjectLine{},
		&models.LineWord{},
		&models.SubjectBox{},
		&models.SubjectTelegram{},
		&models.MetaTag{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
