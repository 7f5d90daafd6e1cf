package dao

import "gorm.io/gorm"

// InitTables creates the full schema via AutoMigrate. Production startups run
// the versioned migrations in internal/db instead; this is for test databases.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Place{},
		&Event{},
		&Participation{},
		&Message{},
	)
}
