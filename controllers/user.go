package controllers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/services"
)

// UserController, hesap işlemleri.
type UserController struct {
	authService services.AuthService
	userService services.UserService
	log         logrus.FieldLogger
}

// NewUserController, constructor.
func NewUserController(authService services.AuthService, userService services.UserService, log logrus.FieldLogger) *UserController {
	return &UserController{authService: authService, userService: userService, log: log}
}

// IsExist, kullanıcı varsa public görünümünü döner.
func (c *UserController) IsExist(ctx context.Context, userName string) (*pkg.Envelope, error) {
	user, err := c.userService.GetByUserName(ctx, userName)
	if errors.Is(err, pkg.ErrNotFound) {
		return pkg.Fail(pkg.RegisterUserNameNotExistInfo), nil
	}
	if err != nil {
		return nil, err
	}
	return pkg.Success(services.FormatUser(*user)), nil
}

// Register, yeni hesap.
func (c *UserController) Register(ctx context.Context, req *models.RegisterRequest) (*pkg.Envelope, error) {
	_, err := c.authService.Register(ctx, req)
	switch {
	case err == nil:
		return pkg.Success(nil), nil
	case errors.Is(err, pkg.ErrAlreadyExists):
		return pkg.Fail(pkg.RegisterUserNameExistInfo), nil
	case errors.Is(err, pkg.ErrBadRequest):
		return pkg.Fail(pkg.ValidateFailInfo), nil
	default:
		c.log.WithError(err).WithField("user_name", req.UserName).Error("register failed")
		return pkg.Fail(pkg.RegisterFailInfo), nil
	}
}

// Login, {token, user} döner.
func (c *UserController) Login(ctx context.Context, req *models.LoginRequest) (*pkg.Envelope, error) {
	res, err := c.authService.Login(ctx, req)
	if errors.Is(err, pkg.ErrUnauthorized) || errors.Is(err, pkg.ErrBadRequest) {
		return pkg.Fail(pkg.LoginFailInfo), nil
	}
	if err != nil {
		return nil, err
	}
	return pkg.Success(res), nil
}

// DeleteCurUser, silinecek satır yoksa Fail.
func (c *UserController) DeleteCurUser(ctx context.Context, userName string) (*pkg.Envelope, error) {
	deleted, err := c.userService.DeleteByUserName(ctx, userName)
	if err != nil {
		c.log.WithError(err).WithField("user_name", userName).Error("delete user failed")
		return pkg.Fail(pkg.DeleteUserFailInfo), nil
	}
	if !deleted {
		return pkg.Fail(pkg.DeleteUserFailInfo), nil
	}
	return pkg.Success(nil), nil
}

// ChangeInfo, güncellenmiş kullanıcıyı döner.
func (c *UserController) ChangeInfo(ctx context.Context, userID int64, req *models.ChangeInfoRequest) (*pkg.Envelope, error) {
	user, err := c.userService.ChangeInfo(ctx, userID, req)
	switch {
	case err == nil:
		return pkg.Success(user), nil
	case errors.Is(err, pkg.ErrBadRequest):
		return pkg.Fail(pkg.ValidateFailInfo), nil
	default:
		if !errors.Is(err, pkg.ErrNotFound) {
			c.log.WithError(err).WithField("user_id", userID).Error("change info failed")
		}
		return pkg.Fail(pkg.ChangeInfoFailInfo), nil
	}
}

// ChangePassword, mevcut şifre yanlışsa Fail.
func (c *UserController) ChangePassword(ctx context.Context, userID int64, req *models.ChangePasswordRequest) (*pkg.Envelope, error) {
	err := c.authService.ChangePassword(ctx, userID, req)
	switch {
	case err == nil:
		return pkg.Success(nil), nil
	case errors.Is(err, pkg.ErrBadRequest):
		return pkg.Fail(pkg.ValidateFailInfo), nil
	default:
		if !errors.Is(err, pkg.ErrUnauthorized) && !errors.Is(err, pkg.ErrNotFound) {
			c.log.WithError(err).WithField("user_id", userID).Error("change password failed")
		}
		return pkg.Fail(pkg.ChangePasswordFailInfo), nil
	}
}
