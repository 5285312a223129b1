package db

import (
	"context"
	"database/sql"
)

// MigrateUp creates the catalog tables. Each table keeps a position column
// so that a full read returns rows in the order they were written.
// courses.college_id deliberately has no foreign key: dangling references
// are valid catalog state.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	tables := []string{
		`
CREATE TABLE IF NOT EXISTS colleges (
    position     INTEGER NOT NULL,
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    location     TEXT NOT NULL DEFAULT '',
    state        TEXT NOT NULL DEFAULT '',
    logo_url     TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    phone        VARCHAR(10) NOT NULL DEFAULT '',
    rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
    rating_count INTEGER NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS courses (
    position     INTEGER NOT NULL,
    id           TEXT PRIMARY KEY,
    college_id   TEXT NOT NULL,
    course_name  TEXT NOT NULL,
    fees         BIGINT NOT NULL DEFAULT 0,
    duration     TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
    rating_count INTEGER NOT NULL DEFAULT 0
)`,
		`
CREATE TABLE IF NOT EXISTS users (
    position INTEGER NOT NULL,
    email    TEXT PRIMARY KEY,
    name     TEXT NOT NULL DEFAULT '',
    role     TEXT NOT NULL,
    avatar   TEXT NOT NULL DEFAULT ''
)`,
	}
	for _, stmt := range tables {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		// 参照整合性チェック用
		`CREATE INDEX IF NOT EXISTS idx_courses_college_id ON courses(college_id)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_position ON courses(position)`,
		`CREATE INDEX IF NOT EXISTS idx_colleges_position ON colleges(position)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops the catalog tables.
// Use with caution: this deletes all catalog data.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS courses`,
		`DROP TABLE IF EXISTS colleges`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
