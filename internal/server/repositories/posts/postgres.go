package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/dbx"
	"github.com/dmitrijs2005/tempero/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation: an id that is not a UUID
const invalidText = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT p.id, p.title, p.content, p.author_id, p.created_at, u.name
		 FROM posts p JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		var (
			p    models.Post
			name string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &name); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		p.Author = &models.Author{Name: name}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (id, title, content, author_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `
	_, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT id, title, content, author_id, created_at FROM posts
		 WHERE id = $1
		 `
	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, title, content string) error {
	query := `UPDATE posts SET title = $2, content = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, title, content)
	if err != nil {
		return mapLookupError(err)
	}
	return dbx.RowsAffectedOne(res, common.ErrorNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapLookupError(err)
	}
	return dbx.RowsAffectedOne(res, common.ErrorNotFound)
}

func mapLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidText {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
