package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS voters (
    npm TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    region TEXT NOT NULL,
    class_label TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    photo TEXT NOT NULL DEFAULT '',
    has_voted INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ballots (
    id TEXT PRIMARY KEY,
    candidate TEXT NOT NULL,
    cast_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ballots_candidate ON ballots(candidate);

CREATE TABLE IF NOT EXISTS audit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    npm TEXT NOT NULL,
    at INTEGER NOT NULL,
    location TEXT NOT NULL,
    action TEXT NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
