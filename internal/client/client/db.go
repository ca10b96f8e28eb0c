package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tempero/internal/client/migrations"
	"github.com/dmitrijs2005/tempero/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tempero/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories groups the repositories of the local client database.
type Repositories struct {
	DB       *sql.DB
	Metadata *metadata.SQLiteRepository
}

// Close releases the underlying database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and brings its schema up to date.
// For a plain file path the containing directory is created first.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("prepare client db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open client db: %w", err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate client db: %w", err)
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
