package storage

import (
	"time"

	"gorm.io/datatypes"
)

// AdminUser is the storage model for the administrator account.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null"            json:"-"`
	CreatedAt    time.Time `                                             json:"created_at"`
}

// Post is the storage model for blog posts.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"type:varchar(200);not null"             json:"title"`
	Slug      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Content   string    `gorm:"type:text;not null"                     json:"content"`
	Excerpt   string    `gorm:"type:varchar(500)"                      json:"excerpt,omitempty"`
	Published bool      `gorm:"not null;default:false;index"           json:"published"`
	CreatedAt time.Time `gorm:"index"                                  json:"created_at"`
	UpdatedAt time.Time `                                              json:"updated_at"`
}

// Project is the storage model for portfolio projects. Links holds the
// optional live/source/image URLs as one JSON document.
type Project struct {
	ID           uint           `gorm:"primaryKey"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`
	Description  string         `gorm:"type:text;not null"         json:"description"`
	TechStack    string         `gorm:"type:varchar(500);not null" json:"tech_stack"`
	Links        datatypes.JSON `                                  json:"links,omitempty"`
	Featured     bool           `gorm:"not null;default:false"     json:"featured"`
	DisplayOrder int            `gorm:"not null;default:0;index"   json:"display_order"`
	CreatedAt    time.Time      `                                  json:"created_at"`
}
