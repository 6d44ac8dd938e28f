// Package main — HTTP route kayıtları.
package main

import (
	"net/http"

	"github.com/akinalp/mblog/middleware"
	"github.com/akinalp/mblog/repository"
	"github.com/akinalp/mblog/services"
)

// initRoutes, middleware chain'i kurar ve endpoint'leri mux'a bağlar.
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService, userRepo repository.UserRepository) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}

	mux.HandleFunc("GET /api/health", h.Health.Health)

	// User
	mux.HandleFunc("POST /api/user/isExist", h.User.IsExist)
	mux.HandleFunc("POST /api/user/register", h.User.Register)
	mux.HandleFunc("POST /api/user/login", h.User.Login)
	mux.Handle("POST /api/user/delete", auth(h.User.DeleteCurUser))
	mux.Handle("PATCH /api/user/changeInfo", auth(h.User.ChangeInfo))
	mux.Handle("PATCH /api/user/changePassword", auth(h.User.ChangePassword))

	// Blog
	mux.Handle("POST /api/blog/create", auth(h.Blog.Create))

	// @ bana
	mux.Handle("GET /api/atMe/count", auth(h.AtMe.Count))
	mux.Handle("GET /api/atMe/list/{pageIndex}", auth(h.AtMe.List))
	mux.Handle("POST /api/atMe/read", auth(h.AtMe.MarkAsRead))

	// WebSocket: tarayıcı upgrade'de header gönderemez, token query'de gelir.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
