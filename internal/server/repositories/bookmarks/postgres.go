// Package bookmarks provides the PostgreSQL-backed bookmark store.
package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

const selectBookmark = `SELECT id, user_id, title, description, link, created_at, updated_at FROM bookmarks`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the user's bookmarks ordered by id. The result is never nil.
func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, selectBookmark+` WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Bookmark, 0)
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	query :=
		`INSERT INTO bookmarks (user_id, title, description, link)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Title, b.Description, b.Link).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	return r.getOne(ctx, selectBookmark+` WHERE id = $1 AND user_id = $2`, id, userID)
}

// LockByID is Get with a row lock; use it inside a transaction.
func (r *PostgresRepository) LockByID(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	return r.getOne(ctx, selectBookmark+` WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	query :=
		`UPDATE bookmarks SET title = $3, description = $4, link = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, b.ID, b.UserID, b.Title, b.Description, b.Link).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Bookmark, error) {
	b := &models.Bookmark{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}
