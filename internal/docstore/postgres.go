package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"carvault/internal/docstore/migrations"
)

// OpenPostgres opens a database handle through the pgx stdlib driver and
// applies the embedded migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

// PostgresBackend stores the collection snapshot as one JSONB row in the
// collections table, keyed by collection name.
type PostgresBackend struct {
	db   *sql.DB
	name string
}

func NewPostgresBackend(db *sql.DB, name string) *PostgresBackend {
	return &PostgresBackend{db: db, name: name}
}

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT data FROM collections WHERE name = $1`

	var data []byte
	err := b.db.QueryRowContext(ctx, query, b.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return data, nil
}

// Save replaces the snapshot in a single upsert statement, which the
// database applies atomically.
func (b *PostgresBackend) Save(ctx context.Context, data []byte) error {
	query := `INSERT INTO collections (name, data, updated_at)
	          VALUES ($1, $2, now())
	          ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := b.db.ExecContext(ctx, query, b.name, data); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
