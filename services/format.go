package services

import (
	"html"
	"regexp"

	"github.com/akinalp/mblog/models"
)

// DefaultPicture, avatarı olmayan kullanıcılar için.
const DefaultPicture = "/images/default-avatar.png"

const createdAtLayout = "01.02 15:04"

// mentionPattern, içerikteki @userName referansları.
// Kullanıcı adı kuralıyla aynı karakter kümesi: harf, rakam, alt çizgi.
var mentionPattern = regexp.MustCompile(`@(\w+)`)

// FormatUser, kullanıcının dışarıya açık görünümü.
// Boş picture → DefaultPicture, boş nickName → userName.
func FormatUser(u models.User) models.PublicUser {
	p := models.PublicUser{
		UserName: u.UserName,
		NickName: u.NickName,
		Picture:  u.Picture,
	}
	return normalizePublicUser(p)
}

func normalizePublicUser(p models.PublicUser) models.PublicUser {
	if p.Picture == "" {
		p.Picture = DefaultPicture
	}
	if p.NickName == "" {
		p.NickName = p.UserName
	}
	return p
}

// FormatBlogs, join satırlarını BlogView'a çevirir.
// Storage alanları (updatedAt, şifre hash'i vb.) düşer; CreatedAtFormat ve
// ContentFormat eklenir. User alanı yazarın ham public alanlarıdır, avatar
// normalizasyonu FormatUser'ın işidir. Girdi değiştirilmez.
func FormatBlogs(records []models.AtBlogRecord) []models.BlogView {
	views := make([]models.BlogView, 0, len(records))
	for _, rec := range records {
		ref := rec.AtRelation
		views = append(views, FormatBlogView(models.BlogView{
			ID:        rec.Blog.ID,
			UserID:    rec.Blog.UserID,
			Content:   rec.Blog.Content,
			Image:     rec.Blog.Image,
			CreatedAt: rec.Blog.CreatedAt,
			User: models.PublicUser{
				UserName: rec.Author.UserName,
				NickName: rec.Author.NickName,
				Picture:  rec.Author.Picture,
			},
			AtRelation: &ref,
		}))
	}
	return views
}

// FormatBlogView, türetilmiş alanları ham alanlardan yeniden hesaplar.
// Idempotent: FormatBlogView(FormatBlogView(v)) == FormatBlogView(v).
func FormatBlogView(v models.BlogView) models.BlogView {
	v.CreatedAtFormat = v.CreatedAt.Format(createdAtLayout)
	v.ContentFormat = formatContent(v.Content)
	if v.AtRelation != nil {
		ref := *v.AtRelation
		v.AtRelation = &ref
	}
	return v
}

// formatContent, içeriği HTML-escape eder ve @userName'leri profil linkine çevirir.
func formatContent(content string) string {
	return mentionPattern.ReplaceAllString(
		html.EscapeString(content),
		`<a href="/profile/$1">@$1</a>`,
	)
}

// extractMentionNames, içerikte geçen benzersiz kullanıcı adları (ilk görülme sırası).
func extractMentionNames(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
