package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/notes-web/internal/db"
)

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestPostgresBackend(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	conn, err := db.Open(ctx, url, db.PoolOptions{MaxOpenConns: 2, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	name := "test-" + uuid.NewString()
	b, err := NewPostgresBackend(ctx, conn.SQL, name)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.SQL.ExecContext(context.Background(), `DELETE FROM note_documents WHERE name = $1`, name)
		_ = b.Close()
	})

	_, err = b.Read(ctx)
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, b.Write(ctx, []byte(`[{"id": 1, "title": "a"}]`)))
	require.NoError(t, b.Write(ctx, []byte(`[{"id": 2, "title": "b"}]`)))

	got, err := b.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id": 2, "title": "b"}]`, string(got))

	require.Error(t, b.Write(ctx, []byte(`{not json`)))
}
