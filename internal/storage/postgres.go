package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresBackend keeps the document as a JSONB row in note_documents,
// keyed by name.
type PostgresBackend struct {
	db   *sql.DB
	name string

	stmtRead  *sql.Stmt
	stmtWrite *sql.Stmt
}

func NewPostgresBackend(ctx context.Context, db *sql.DB, name string) (*PostgresBackend, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS note_documents (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return nil, fmt.Errorf("create note_documents: %w", err)
	}

	read, err := db.PrepareContext(ctx, `
		SELECT body::text
		FROM note_documents
		WHERE name = $1
	`)
	if err != nil {
		return nil, err
	}

	write, err := db.PrepareContext(ctx, `
		INSERT INTO note_documents (name, body, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`)
	if err != nil {
		_ = read.Close()
		return nil, err
	}

	return &PostgresBackend{
		db:        db,
		name:      name,
		stmtRead:  read,
		stmtWrite: write,
	}, nil
}

func (b *PostgresBackend) Close() error {
	for _, s := range []*sql.Stmt{b.stmtRead, b.stmtWrite} {
		if s != nil {
			_ = s.Close()
		}
	}
	return nil
}

func (b *PostgresBackend) Describe() string {
	return "postgres:note_documents/" + b.name
}

func (b *PostgresBackend) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.stmtRead.QueryRowContext(ctx, b.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", b.name, err)
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Write(ctx context.Context, data []byte) error {
	if _, err := b.stmtWrite.ExecContext(ctx, b.name, string(data)); err != nil {
		return fmt.Errorf("write document %q: %w", b.name, err)
	}
	return nil
}
