// Package handlers, HTTP request/response köprüsü.
//
// Handler ince olmalı: body'yi parse et, controller'ı çağır, envelope'u yaz.
// İş mantığı ve DB erişimi içermez.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

// contextKey, context.Value çakışmalarını önlemek için özel tip.
type contextKey string

// UserContextKey, auth middleware'ın context'e koyduğu *models.User.
const UserContextKey contextKey = "user"

// maxBodyBytes, JSON body üst sınırı.
const maxBodyBytes = 1 << 20

// currentUser, auth middleware'ın eklediği kullanıcıyı döner.
func currentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}

// requireUser, kullanıcı yoksa 401 + loginCheckFail yazar ve false döner.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := currentUser(r)
	if !ok {
		pkg.JSONWithStatus(w, http.StatusUnauthorized, pkg.Fail(pkg.LoginCheckFailInfo))
		return nil, false
	}
	return user, true
}

// decodeJSON, body'yi dst'ye parse eder; hata varsa 400 yazar ve false döner.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respond, controller sonucunu yazar. Controller hatası → pkg.Error.
func respond(w http.ResponseWriter, env *pkg.Envelope, err error) {
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, env)
}
