package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/repository"
)

// BlogService, blog oluşturma ve @ ilişkilerinin çıkarılması.
type BlogService interface {
	Create(ctx context.Context, userID int64, req *models.CreateBlogRequest) (*models.Blog, error)
}

type blogService struct {
	blogRepo  repository.BlogRepository
	userRepo  repository.UserRepository
	atService AtRelationService
	log       logrus.FieldLogger
}

// NewBlogService, constructor.
func NewBlogService(
	blogRepo repository.BlogRepository,
	userRepo repository.UserRepository,
	atService AtRelationService,
	log logrus.FieldLogger,
) BlogService {
	return &blogService{
		blogRepo:  blogRepo,
		userRepo:  userRepo,
		atService: atService,
		log:       log,
	}
}

// Create, blog'u kaydeder ve içerikteki her benzersiz, var olan @userName
// için bir @ ilişkisi oluşturur. İlişki hataları loglanır, blog oluşturmayı
// başarısız yapmaz.
func (s *blogService) Create(ctx context.Context, userID int64, req *models.CreateBlogRequest) (*models.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	blog := &models.Blog{
		UserID:  userID,
		Content: req.Content,
		Image:   req.Image,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.createMentions(ctx, blog)

	return blog, nil
}

func (s *blogService) createMentions(ctx context.Context, blog *models.Blog) {
	names := extractMentionNames(blog.Content)
	if len(names) == 0 {
		return
	}

	log := s.log.WithField("blog_id", blog.ID)

	users, err := s.userRepo.GetByUserNames(ctx, names)
	if err != nil {
		log.WithError(err).Warn("failed to resolve mentioned users")
		return
	}

	for _, u := range users {
		if _, err := s.atService.Create(ctx, blog.ID, u.ID); err != nil {
			log.WithError(err).WithField("user_id", u.ID).Warn("failed to create at relation")
		}
	}
}
