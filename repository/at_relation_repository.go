package repository

import (
	"context"

	"github.com/akinalp/mblog/models"
)

// AtRelationRepository, @ ilişkisi veritabanı işlemleri için interface.
//
// Create: Tek ilişki satırı ekler (okunmamış). Tekrar kontrolü yapmaz.
// CountByFilter: Filtreye uyan satır sayısı.
// FindBlogsByUser: Kullanıcının bahsedildiği blog'lar + yazarları, blog id azalan sırada.
// Update: Filtreye uyan satırlara patch uygular, etkilenen satır sayısını döner.
type AtRelationRepository interface {
	Create(ctx context.Context, blogID, userID int64) (*models.AtRelation, error)
	CountByFilter(ctx context.Context, filter models.AtRelationFilter) (int, error)
	FindBlogsByUser(ctx context.Context, userID int64, limit, offset int) (int, []models.AtBlogRecord, error)
	Update(ctx context.Context, patch models.AtRelationPatch, filter models.AtRelationFilter) (int64, error)
}
