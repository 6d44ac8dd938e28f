// Package middleware, HTTP request pipeline'ına eklenen ara katmanlar.
//
// Middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Kendi işini yapar, hata varsa next'i çağırmadan yanıt yazar.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/mblog/handlers"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/repository"
)

// TokenValidator, access token doğrulayan bileşen (services.AuthService karşılar).
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// AuthMiddleware, JWT doğrulama middleware'ı.
type AuthMiddleware struct {
	tokens   TokenValidator
	userRepo repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(tokens TokenValidator, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// loginCheckFail, oturum yoksa 401 + {errno: 10005} yazar.
func loginCheckFail(w http.ResponseWriter) {
	pkg.JSONWithStatus(w, http.StatusUnauthorized, pkg.Fail(pkg.LoginCheckFailInfo))
}

// Require, "Authorization: Bearer <token>" zorunlu kılar.
// Token geçerliyse kullanıcı DB'den yüklenip context'e konur; token geçerli
// ama kullanıcı silinmişse 401.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			loginCheckFail(w)
			return
		}

		claims, err := m.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			loginCheckFail(w)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			loginCheckFail(w)
			return
		}
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
