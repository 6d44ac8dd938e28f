// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'leri üzerinden çalışır.
// Her interface'in SQLite implementasyonu sqlite_*.go dosyalarındadır.
package repository

import (
	"context"

	"github.com/akinalp/mblog/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	// GetByUserNames, mention parse sonucu için toplu arama (N+1 önleme).
	// Bulunamayan isimler sessizce atlanır.
	GetByUserNames(ctx context.Context, userNames []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, nickName, city, picture string) error
	UpdatePassword(ctx context.Context, id int64, newPasswordHash string) error
	// DeleteByUserName, silinen satır olduysa true döner. Olmayan kullanıcı hata değildir.
	DeleteByUserName(ctx context.Context, userName string) (bool, error)
}
