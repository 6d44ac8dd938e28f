package handlers

import (
	"net/http"

	"github.com/akinalp/mblog/pkg"
)

// OnlineUsers, canlı WS bağlantısı olan kullanıcıları sunan bileşen (ws.Hub karşılar).
type OnlineUsers interface {
	GetOnlineUserIDs() []int64
}

type healthData struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	OnlineUsers int    `json:"onlineUsers"`
}

// HealthHandler, /api/health.
type HealthHandler struct {
	online OnlineUsers
}

// NewHealthHandler, constructor.
func NewHealthHandler(online OnlineUsers) *HealthHandler {
	return &HealthHandler{online: online}
}

// Health godoc
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, pkg.Success(healthData{
		Status:      "ok",
		Service:     "mblog",
		OnlineUsers: len(h.online.GetOnlineUserIDs()),
	}))
}
