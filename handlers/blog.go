package handlers

import (
	"net/http"

	"github.com/akinalp/mblog/controllers"
	"github.com/akinalp/mblog/models"
)

// BlogHandler, /api/blog/* endpoint'leri.
type BlogHandler struct {
	ctrl *controllers.BlogController
}

// NewBlogHandler, constructor.
func NewBlogHandler(ctrl *controllers.BlogController) *BlogHandler {
	return &BlogHandler{ctrl: ctrl}
}

// Create godoc
// POST /api/blog/create
// İçerikteki @userName'ler için @ ilişkileri oluşturulur.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CreateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	env, err := h.ctrl.Create(r.Context(), user.ID, &req)
	respond(w, env, err)
}
