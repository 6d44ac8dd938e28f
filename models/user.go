// Package models, uygulamanın domain modellerini tanımlar.
//
// Her struct bir tablonun Go karşılığıdır ve aynı zamanda API'den
// gelen/giden verilerin şeklini belirler.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Gender, kullanıcının cinsiyet tercihi.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderSecret Gender = 3
)

// Valid, izin verilen değerlerden biri mi.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderSecret
}

// User, bir kullanıcıyı temsil eder.
// UserName kayıttan sonra değişmez; NickName, City ve Picture profil düzenlemesiyle değişir.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"` // API response'a asla dahil edilmez
	NickName     string    `json:"nickName"`
	Gender       Gender    `json:"gender"`
	Picture      string    `json:"picture"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser, mention listesinde blog yazarı olarak dışarı çıkan tek kullanıcı şekli.
type PublicUser struct {
	UserName string `json:"userName"`
	NickName string `json:"nickName"`
	Picture  string `json:"picture"`
}

// RegisterRequest, kayıt isteği.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Gender   Gender `json:"gender"`
}

// Validate, kayıt isteğini doğrular.
//   - UserName: 2-32 karakter, harf/rakam/alt çizgi (mention regex'i ile uyumlu)
//   - Password: 3-255 karakter
//   - Gender: boşsa "gizli"
func (r *RegisterRequest) Validate() error {
	r.UserName = strings.TrimSpace(r.UserName)
	if err := validateUserName(r.UserName); err != nil {
		return err
	}

	passLen := utf8.RuneCountInString(r.Password)
	if passLen < 3 || passLen > 255 {
		return fmt.Errorf("password must be between 3 and 255 characters")
	}

	if r.Gender == 0 {
		r.Gender = GenderSecret
	}
	if !r.Gender.Valid() {
		return fmt.Errorf("gender must be 1, 2 or 3")
	}

	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.UserName = strings.TrimSpace(r.UserName)
	if r.UserName == "" {
		return fmt.Errorf("userName is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ChangeInfoRequest, profil düzenleme isteği.
type ChangeInfoRequest struct {
	NickName string `json:"nickName"`
	City     string `json:"city"`
	Picture  string `json:"picture"`
}

// Validate, alanları kırpar ve uzunluk kontrolü yapar.
func (r *ChangeInfoRequest) Validate() error {
	r.NickName = strings.TrimSpace(r.NickName)
	r.City = strings.TrimSpace(r.City)
	r.Picture = strings.TrimSpace(r.Picture)

	if utf8.RuneCountInString(r.NickName) > 32 {
		return fmt.Errorf("nickName must be at most 32 characters")
	}
	if utf8.RuneCountInString(r.City) > 64 {
		return fmt.Errorf("city must be at most 64 characters")
	}
	if len(r.Picture) > 512 {
		return fmt.Errorf("picture must be at most 512 characters")
	}
	return nil
}

// ChangePasswordRequest, şifre değiştirme isteği.
type ChangePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// Validate, iki alanın da dolu olduğunu kontrol eder.
func (r *ChangePasswordRequest) Validate() error {
	if r.Password == "" || r.NewPassword == "" {
		return fmt.Errorf("password and newPassword are required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 3 {
		return fmt.Errorf("newPassword must be at least 3 characters")
	}
	return nil
}

func validateUserName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 32 {
		return fmt.Errorf("userName must be between 2 and 32 characters")
	}
	for _, ch := range name {
		if !isValidUserNameChar(ch) {
			return fmt.Errorf("userName can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

func isValidUserNameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
