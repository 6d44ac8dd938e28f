// Package controllers, service sonuçlarını {errno, data|message} envelope'una çevirir.
//
// Beklenen iş hataları katalogdaki ErrorInfo ile Fail envelope'u olur;
// beklenmeyen hatalar handler katmanına döner ve pkg.Error ile yazılır.
package controllers

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/services"
)

// AtMeCountData, GetAtMeCount payload'ı.
type AtMeCountData struct {
	Count int `json:"count"`
}

// AtMeBlogListData, GetAtMeBlogList payload'ı.
type AtMeBlogListData struct {
	IsEmpty   bool              `json:"isEmpty"`
	BlogList  []models.BlogView `json:"blogList"`
	PageSize  int               `json:"pageSize"`
	PageIndex int               `json:"pageIndex"`
	Count     int               `json:"count"`
}

// AtMeController, "@ bana" sayfasının işlemleri.
type AtMeController struct {
	atService services.AtRelationService
	log       logrus.FieldLogger

	inflight sync.WaitGroup
}

// NewAtMeController, constructor.
func NewAtMeController(atService services.AtRelationService, log logrus.FieldLogger) *AtMeController {
	return &AtMeController{atService: atService, log: log}
}

// GetAtMeCount, okunmamış @ sayısı.
func (c *AtMeController) GetAtMeCount(ctx context.Context, userID int64) (*pkg.Envelope, error) {
	count, err := c.atService.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pkg.Success(AtMeCountData{Count: count}), nil
}

// GetAtMeBlogList, sabit sayfa boyutuyla (models.PageSize) bir sayfa.
func (c *AtMeController) GetAtMeBlogList(ctx context.Context, userID int64, pageIndex int) (*pkg.Envelope, error) {
	page, err := c.atService.ListMentioned(ctx, userID, pageIndex, models.PageSize)
	if err != nil {
		return nil, err
	}

	return pkg.Success(AtMeBlogListData{
		IsEmpty:   len(page.BlogList) == 0,
		BlogList:  page.BlogList,
		PageSize:  models.PageSize,
		PageIndex: pageIndex,
		Count:     page.Count,
	}), nil
}

// MarkAsRead, tüm @'ları arka planda okundu yapar ve hemen döner.
// İstek context'i iptal edilse de işlem sürer; sonuç yalnızca loglarda görünür.
func (c *AtMeController) MarkAsRead(ctx context.Context, userID int64) {
	detached := context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if c.atService.MarkAllRead(detached, userID) {
			c.log.WithField("user_id", userID).Debug("mentions marked as read")
		}
	}()
}

// Wait, devam eden MarkAsRead işlerinin bitmesini bekler.
func (c *AtMeController) Wait() {
	c.inflight.Wait()
}
