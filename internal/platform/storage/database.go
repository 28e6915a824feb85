package storage

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio-server-go/internal/platform/errors"
	"portfolio-server-go/internal/platform/storage/migrations"
)

// Global database instance shared by the repositories.
var db *gorm.DB

// InitDatabase opens the SQLite database at path and brings the schema
// up to date. The parent directory is created when missing.
func InitDatabase(path string) error {
	if db != nil {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.KindStorage, "database.init", "failed to create data directory", err)
		}
	}

	opened, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "database.init", "failed to open database", err)
	}
	db = opened

	// AutoMigrate catches schema drift the versioned migrations miss.
	if err := db.AutoMigrate(&AdminUser{}, &Post{}, &Project{}); err != nil {
		return errors.Wrap(errors.KindStorage, "database.migrate", "failed to migrate database", err)
	}

	manager := NewMigrationManager(db)
	manager.AddMigration(&migrations.Migration001Initial{})
	if err := manager.RunMigrations(); err != nil {
		return err
	}

	return nil
}

// GetDB returns the global database instance.
func GetDB() *gorm.DB {
	if db == nil {
		panic("database not initialized, call InitDatabase() first")
	}
	return db
}

// CloseDatabase releases the underlying connection pool. Safe to call
// when the database was never opened.
func CloseDatabase() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(errors.KindStorage, "database.close", "failed to access connection pool", err)
	}
	db = nil
	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(errors.KindStorage, "database.close", "failed to close database", err)
	}
	return nil
}
