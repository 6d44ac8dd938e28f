package services

import (
	"context"
	"fmt"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/repository"
)

// UserService, profil okuma/düzenleme ve hesap silme.
type UserService interface {
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ChangeInfo(ctx context.Context, userID int64, req *models.ChangeInfoRequest) (*models.User, error)
	// DeleteByUserName, silinecek kullanıcı yoksa false, nil döner.
	DeleteByUserName(ctx context.Context, userName string) (bool, error)
}

type userService struct {
	userRepo  repository.UserRepository
	atService AtRelationService
}

// NewUserService, constructor.
func NewUserService(userRepo repository.UserRepository, atService AtRelationService) UserService {
	return &userService{userRepo: userRepo, atService: atService}
}

func (s *userService) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	return s.userRepo.GetByUserName(ctx, userName)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangeInfo, boş nickName verilirse userName'e döner.
func (s *userService) ChangeInfo(ctx context.Context, userID int64, req *models.ChangeInfoRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	nickName := req.NickName
	if nickName == "" {
		nickName = user.UserName
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, nickName, req.City, req.Picture); err != nil {
		return nil, err
	}

	user.NickName = nickName
	user.City = req.City
	user.Picture = req.Picture
	return user, nil
}

// DeleteByUserName, kullanıcının blog'ları silinince başkalarına ait @
// ilişkileri de cascade ile gider; okunmamış sayı cache'i bu yüzden düşürülür.
func (s *userService) DeleteByUserName(ctx context.Context, userName string) (bool, error) {
	deleted, err := s.userRepo.DeleteByUserName(ctx, userName)
	if err != nil {
		return false, err
	}
	if deleted {
		s.atService.InvalidateCounts()
	}
	return deleted, nil
}
