package models

import "time"

// PageSize, @ listesi için sistem genelinde sabit sayfa boyutu.
// İstek bazında değiştirilemez.
const PageSize = 5

// AtRelation, "blogId numaralı blog userId kullanıcısından bahsediyor" kaydı.
//
// IsRead false başlar ve yalnızca toplu "okundu" güncellemesiyle true olur;
// geri false'a dönmez.
type AtRelation struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blogId"`
	UserID    int64     `json:"userId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AtRelationRef, listelemede blog'a iliştirilen ilişki özeti.
type AtRelationRef struct {
	UserID int64 `json:"userId"`
	BlogID int64 `json:"blogId"`
	IsRead bool  `json:"isRead"`
}

// AtRelationPatch, güncellenecek alanlar. nil alan = dokunma.
type AtRelationPatch struct {
	IsRead *bool
}

// Empty, güncellenecek hiçbir alan yoksa true.
func (p AtRelationPatch) Empty() bool {
	return p.IsRead == nil
}

// AtRelationFilter, güncelleme/sayma koşulu. nil alan = filtre yok.
// false değeri de geçerli bir filtredir (IsRead: Bool(false) → okunmamışlar).
type AtRelationFilter struct {
	UserID *int64
	IsRead *bool
}

// AtBlogRecord, store'dan gelen ham join satırı: blog + @ ilişkisi + yazar.
type AtBlogRecord struct {
	Blog       Blog
	Author     User
	AtRelation AtRelationRef
}

// BlogView, formatlanmış blog: storage alanları çıkarılmış, yazar iç içe.
type BlogView struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	Content         string         `json:"content"`
	ContentFormat   string         `json:"contentFormat"`
	Image           string         `json:"image"`
	CreatedAt       time.Time      `json:"createdAt"`
	CreatedAtFormat string         `json:"createdAtFormat"`
	User            PublicUser     `json:"user"`
	AtRelation      *AtRelationRef `json:"atRelation,omitempty"`
}

// AtBlogPage, sayfalanmış @ listesi. Count, sayfadan bağımsız toplam eşleşme sayısıdır.
type AtBlogPage struct {
	Count    int        `json:"count"`
	BlogList []BlogView `json:"blogList"`
}

// Bool, *bool literal'i için yardımcı.
func Bool(b bool) *bool {
	return &b
}

// Int64, *int64 literal'i için yardımcı.
func Int64(v int64) *int64 {
	return &v
}
