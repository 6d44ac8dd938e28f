package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/mblog/controllers"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/pkg/ratelimit"
)

// UserHandler, /api/user/* endpoint'leri.
type UserHandler struct {
	ctrl         *controllers.UserController
	loginLimiter *ratelimit.LoginLimiter
}

// NewUserHandler, constructor. loginLimiter nil ise rate limiting kapalıdır.
func NewUserHandler(ctrl *controllers.UserController, loginLimiter *ratelimit.LoginLimiter) *UserHandler {
	return &UserHandler{ctrl: ctrl, loginLimiter: loginLimiter}
}

type isExistRequest struct {
	UserName string `json:"userName"`
}

// IsExist godoc
// POST /api/user/isExist
func (h *UserHandler) IsExist(w http.ResponseWriter, r *http.Request) {
	var req isExistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.IsExist(r.Context(), req.UserName)
	respond(w, env, err)
}

// Register godoc
// POST /api/user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.Register(r.Context(), &req)
	respond(w, env, err)
}

// Login godoc
// POST /api/user/login
//
// IP bazlı deneme sınırı; aşılırsa 429 + Retry-After. Başarılı giriş sayacı sıfırlar.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := int(h.loginLimiter.RetryAfter(ip).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.JSONWithStatus(w, http.StatusTooManyRequests, pkg.Fail(pkg.LoginRateLimitInfo))
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.Login(r.Context(), &req)
	if err == nil && env.OK() && h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}
	respond(w, env, err)
}

// DeleteCurUser godoc
// POST /api/user/delete
func (h *UserHandler) DeleteCurUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	env, err := h.ctrl.DeleteCurUser(r.Context(), user.UserName)
	respond(w, env, err)
}

// ChangeInfo godoc
// PATCH /api/user/changeInfo
func (h *UserHandler) ChangeInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ChangeInfoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.ChangeInfo(r.Context(), user.ID, &req)
	respond(w, env, err)
}

// ChangePassword godoc
// PATCH /api/user/changePassword
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.ChangePassword(r.Context(), user.ID, &req)
	respond(w, env, err)
}
