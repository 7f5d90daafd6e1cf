package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type migration struct {
	version    int
	name       string
	statements []string
}

// The schema history is append-only: never edit an applied migration, add a
// new one. Applied versions are recorded in schema_migrations.
var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				username TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				email TEXT,
				points INTEGER NOT NULL DEFAULT 0,
				avatar_color TEXT NOT NULL DEFAULT '#6c757d',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT uni_users_username UNIQUE (username)
			)`,
			`CREATE TABLE IF NOT EXISTS events (
				id BIGSERIAL PRIMARY KEY,
				sport TEXT NOT NULL,
				level TEXT NOT NULL,
				gender TEXT NOT NULL DEFAULT 'mixed',
				location TEXT NOT NULL,
				starts_at TIMESTAMPTZ NOT NULL,
				is_accessible BOOLEAN NOT NULL DEFAULT FALSE,
				is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
				organizer_id BIGINT NOT NULL REFERENCES users(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS participations (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				points_awarded INTEGER NOT NULL DEFAULT 50,
				joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT uni_participations_user_event UNIQUE (user_id, event_id)
			)`,
			`CREATE TABLE IF NOT EXISTS messages (
				id BIGSERIAL PRIMARY KEY,
				event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_events_sport ON events(sport)`,
			`CREATE INDEX IF NOT EXISTS idx_events_level ON events(level)`,
			`CREATE INDEX IF NOT EXISTS idx_events_location ON events(location)`,
			`CREATE INDEX IF NOT EXISTS idx_participations_user ON participations(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_participations_event ON participations(event_id)`,
			`CREATE INDEX IF NOT EXISTS idx_messages_event ON messages(event_id)`,
		},
	},
	{
		version: 2,
		name:    "admin flag and places",
		statements: []string{
			`ALTER TABLE users ADD COLUMN IF NOT EXISTS is_admin BOOLEAN NOT NULL DEFAULT FALSE`,
			`CREATE TABLE IF NOT EXISTS places (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				address TEXT,
				city TEXT NOT NULL,
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				sports TEXT,
				is_pmr_accessible BOOLEAN NOT NULL DEFAULT FALSE,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`ALTER TABLE events ADD COLUMN IF NOT EXISTS place_id BIGINT REFERENCES places(id)`,
		},
	},
	{
		version: 3,
		name:    "event geolocation",
		statements: []string{
			`ALTER TABLE events ADD COLUMN IF NOT EXISTS latitude DOUBLE PRECISION`,
			`ALTER TABLE events ADD COLUMN IF NOT EXISTS longitude DOUBLE PRECISION`,
		},
	},
	{
		version: 4,
		name:    "public transport metadata",
		statements: []string{
			`ALTER TABLE events ADD COLUMN IF NOT EXISTS transport_station TEXT`,
			`ALTER TABLE events ADD COLUMN IF NOT EXISTS transport_lines TEXT`,
			`ALTER TABLE places ADD COLUMN IF NOT EXISTS transport_station TEXT`,
			`ALTER TABLE places ADD COLUMN IF NOT EXISTS transport_lines TEXT`,
		},
	},
}

// Migrate applies all pending migrations, each inside its own transaction.
// Safe to run on every startup.
func Migrate(db *gorm.DB) error {
	err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`).Error
	if err != nil {
		return fmt.Errorf("create schema_migrations -> %w", err)
	}

	var current int
	err = db.Raw(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current).Error
	if err != nil {
		return fmt.Errorf("read schema version -> %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range m.statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}

			return tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%v) -> %w", m.version, m.name, err)
		}

		zap.L().Info("applied migration",
			zap.Int("version", m.version),
			zap.String("name", m.name))
	}

	return nil
}
