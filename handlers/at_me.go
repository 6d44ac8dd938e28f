package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/mblog/controllers"
	"github.com/akinalp/mblog/pkg"
)

// AtMeHandler, /api/atMe/* endpoint'leri.
type AtMeHandler struct {
	ctrl *controllers.AtMeController
}

// NewAtMeHandler, constructor.
func NewAtMeHandler(ctrl *controllers.AtMeController) *AtMeHandler {
	return &AtMeHandler{ctrl: ctrl}
}

// Count godoc
// GET /api/atMe/count
func (h *AtMeHandler) Count(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	env, err := h.ctrl.GetAtMeCount(r.Context(), user.ID)
	respond(w, env, err)
}

// List godoc
// GET /api/atMe/list/{pageIndex}
func (h *AtMeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	pageIndex, err := strconv.Atoi(r.PathValue("pageIndex"))
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid page index")
		return
	}

	env, err := h.ctrl.GetAtMeBlogList(r.Context(), user.ID, pageIndex)
	respond(w, env, err)
}

// MarkAsRead godoc
// POST /api/atMe/read
//
// İşlem arka planda sürer; yanıt sonucu beklemez.
func (h *AtMeHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	h.ctrl.MarkAsRead(r.Context(), user.ID)
	pkg.JSON(w, pkg.Success(nil))
}
