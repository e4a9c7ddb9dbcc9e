package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pemira-fti/backend/internal/models"
)

// execer covers *sql.DB and *sql.Tx so audit inserts can ride a larger
// transaction or stand alone.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAudit(ctx context.Context, db execer, entry *models.AuditEntry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO audit_logs (npm, at, location, action) VALUES (?, ?, ?, ?)
	`, entry.NPM, entry.At, entry.Location, entry.Action)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// AppendAudit writes a single audit entry.
func (s *SQLiteStore) AppendAudit(ctx context.Context, entry *models.AuditEntry) error {
	return insertAudit(ctx, s.db, entry)
}

// RecentAudit returns up to limit entries, newest first.
func (s *SQLiteStore) RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, npm, at, location, action
		FROM audit_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.NPM, &entry.At, &entry.Location, &entry.Action); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit log: %w", err)
	}
	return entries, nil
}
