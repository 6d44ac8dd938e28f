package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Blog, bir mikroblog gönderisi. Mention subsystem'i için salt-okunur join hedefidir.
type Blog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBlogRequest, yeni blog isteği.
type CreateBlogRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Validate, içerik 1-2000 karakter arası olmalı.
func (r *CreateBlogRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	r.Image = strings.TrimSpace(r.Image)

	n := utf8.RuneCountInString(r.Content)
	if n < 1 {
		return fmt.Errorf("content is required")
	}
	if n > 2000 {
		return fmt.Errorf("content must be at most 2000 characters")
	}
	return nil
}
