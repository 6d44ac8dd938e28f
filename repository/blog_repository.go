package repository

import (
	"context"

	"github.com/akinalp/mblog/models"
)

// BlogRepository, blog veritabanı işlemleri için interface.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
}
