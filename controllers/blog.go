package controllers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/services"
)

// BlogController, blog oluşturma.
type BlogController struct {
	blogService services.BlogService
	log         logrus.FieldLogger
}

// NewBlogController, constructor.
func NewBlogController(blogService services.BlogService, log logrus.FieldLogger) *BlogController {
	return &BlogController{blogService: blogService, log: log}
}

// Create, oluşturulan blog'u döner.
func (c *BlogController) Create(ctx context.Context, userID int64, req *models.CreateBlogRequest) (*pkg.Envelope, error) {
	blog, err := c.blogService.Create(ctx, userID, req)
	switch {
	case err == nil:
		return pkg.Success(blog), nil
	case errors.Is(err, pkg.ErrBadRequest):
		return pkg.Fail(pkg.ValidateFailInfo), nil
	default:
		c.log.WithError(err).WithField("user_id", userID).Error("create blog failed")
		return pkg.Fail(pkg.CreateBlogFailInfo), nil
	}
}
