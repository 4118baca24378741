package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExportFile is a stored copy of a generated resume document.
type ExportFile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Filename  string
	MIMEType  string
	Content   []byte
	CreatedAt time.Time
}

// SaveExportFile uploads a generated document for a user. The local
// download has already succeeded by the time this runs, so callers treat
// failures as log-only.
func (db *DB) SaveExportFile(ctx context.Context, userID uuid.UUID, filename, mimeType string, content []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO export_files (user_id, filename, mime_type, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, filename, mimeType, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save export file %s: %w", filename, err)
	}
	return id, nil
}

// GetExportFile retrieves a stored export by ID. Returns nil when absent.
func (db *DB) GetExportFile(ctx context.Context, id uuid.UUID) (*ExportFile, error) {
	var file ExportFile
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, filename, mime_type, content, created_at
		 FROM export_files WHERE id = $1`,
		id,
	).Scan(&file.ID, &file.UserID, &file.Filename, &file.MIMEType, &file.Content, &file.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get export file: %w", err)
	}
	return &file, nil
}

// ListExportFiles returns a user's stored exports, newest first, without
// file contents.
func (db *DB) ListExportFiles(ctx context.Context, userID uuid.UUID) ([]ExportFile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, filename, mime_type, created_at
		 FROM export_files WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list export files: %w", err)
	}
	defer rows.Close()

	var files []ExportFile
	for rows.Next() {
		var file ExportFile
		if err := rows.Scan(&file.ID, &file.UserID, &file.Filename, &file.MIMEType, &file.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate export files: %w", err)
	}
	return files, nil
}
