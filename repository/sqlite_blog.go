package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

// sqliteBlogRepo, BlogRepository interface'inin SQLite implementasyonu.
type sqliteBlogRepo struct {
	db database.TxQuerier
}

// NewSQLiteBlogRepo, constructor — interface döner.
func NewSQLiteBlogRepo(db database.TxQuerier) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

func (r *sqliteBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (user_id, content, image)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, blog.UserID, blog.Content, blog.Image).
		Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: author does not exist", pkg.ErrNotFound)
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *sqliteBlogRepo) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	query := `SELECT id, user_id, content, image, created_at, updated_at FROM blogs WHERE id = ?`

	blog := &models.Blog{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.UserID, &blog.Content, &blog.Image, &blog.CreatedAt, &blog.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog by id: %w", err)
	}

	return blog, nil
}
