// Package main — Service katmanı başlatma.
//
// Sıralama: AtRelationService, BlogService'ten önce (blog oluşturma @ ilişkisi yaratır).
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/config"
	"github.com/akinalp/mblog/pkg/cache"
	"github.com/akinalp/mblog/pkg/logger"
	"github.com/akinalp/mblog/pkg/ratelimit"
	"github.com/akinalp/mblog/services"
	"github.com/akinalp/mblog/ws"
)

// Services, service instance'ları ve paylaşılan process içi state.
type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Blog       services.BlogService
	AtRelation services.AtRelationService

	LoginLimiter *ratelimit.LoginLimiter
	unreadCounts *cache.TTL[int64, int]
}

// Close, arka plan temizleyici goroutine'leri durdurur.
func (s *Services) Close() {
	s.LoginLimiter.Close()
	s.unreadCounts.Close()
}

func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config, root logrus.FieldLogger) *Services {
	unreadCounts := cache.New[int64, int](cfg.Cache.UnreadCountTTL, cfg.Cache.UnreadCountTTL*2)

	atService := services.NewAtRelationService(
		repos.AtRelation,
		unreadCounts,
		hub,
		cfg.Database.QueryTimeout,
		logger.Component(root, "at_relation"),
	)

	return &Services{
		Auth:       services.NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry),
		User:       services.NewUserService(repos.User, atService),
		Blog:       services.NewBlogService(repos.Blog, repos.User, atService, logger.Component(root, "blog")),
		AtRelation: atService,

		LoginLimiter: ratelimit.NewLoginLimiter(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow),
		unreadCounts: unreadCounts,
	}
}
