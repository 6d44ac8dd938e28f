// Package main — Controller ve handler katmanı başlatma.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/config"
	"github.com/akinalp/mblog/controllers"
	"github.com/akinalp/mblog/handlers"
	"github.com/akinalp/mblog/pkg/logger"
	"github.com/akinalp/mblog/ws"
)

// Handlers, HTTP handler'ları ve shutdown'da beklenmesi gereken controller.
type Handlers struct {
	Health *handlers.HealthHandler
	User   *handlers.UserHandler
	Blog   *handlers.BlogHandler
	AtMe   *handlers.AtMeHandler
	WS     *ws.Handler

	AtMeController *controllers.AtMeController
}

func initHandlers(svcs *Services, hub *ws.Hub, cfg *config.Config, root logrus.FieldLogger) *Handlers {
	atMe := controllers.NewAtMeController(svcs.AtRelation, logger.Component(root, "at_me"))
	userCtrl := controllers.NewUserController(svcs.Auth, svcs.User, logger.Component(root, "user"))
	blogCtrl := controllers.NewBlogController(svcs.Blog, logger.Component(root, "blog"))

	return &Handlers{
		Health: handlers.NewHealthHandler(hub),
		User:   handlers.NewUserHandler(userCtrl, svcs.LoginLimiter),
		Blog:   handlers.NewBlogHandler(blogCtrl),
		AtMe:   handlers.NewAtMeHandler(atMe),
		WS:     ws.NewHandler(hub, svcs.Auth, cfg.Server.AllowedOrigins),

		AtMeController: atMe,
	}
}
