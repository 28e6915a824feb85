package migrations

import (
	"gorm.io/gorm"
)

// Migration001Initial creates the core tables.
type Migration001Initial struct{}

func (m *Migration001Initial) Version() string {
	return "001_initial"
}

func (m *Migration001Initial) Description() string {
	return "Create admin_users, posts, and projects tables"
}

func (m *Migration001Initial) Up(db *gorm.DB) error {
	// Raw SQL keeps the schema explicit; AutoMigrate stays as a safety
	// net for columns added later.

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS admin_users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(128) NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(200) NOT NULL,
			slug VARCHAR(200) NOT NULL UNIQUE,
			content TEXT NOT NULL,
			excerpt VARCHAR(500),
			published BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			tech_stack VARCHAR(500) NOT NULL,
			links JSON,
			featured BOOLEAN NOT NULL DEFAULT 0,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_projects_display_order ON projects(display_order)`).Error; err != nil {
		return err
	}

	return nil
}

func (m *Migration001Initial) Down(db *gorm.DB) error {
	if err := db.Exec(`DROP TABLE IF EXISTS projects`).Error; err != nil {
		return err
	}
	if err := db.Exec(`DROP TABLE IF EXISTS posts`).Error; err != nil {
		return err
	}
	if err := db.Exec(`DROP TABLE IF EXISTS admin_users`).Error; err != nil {
		return err
	}

	return nil
}
