package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/pkg/cache"
	"github.com/akinalp/mblog/repository"
	"github.com/akinalp/mblog/ws"
)

// AtRelationService, @ ilişkisi iş kuralları.
type AtRelationService interface {
	Create(ctx context.Context, blogID, userID int64) (*models.AtRelation, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	ListMentioned(ctx context.Context, userID int64, pageIndex, pageSize int) (*models.AtBlogPage, error)
	Update(ctx context.Context, patch models.AtRelationPatch, filter models.AtRelationFilter) (bool, error)
	// MarkAllRead, kullanıcının tüm okunmamış ilişkilerini okundu yapar.
	// Hata döndürmez: store hatası loglanır ve false döner.
	MarkAllRead(ctx context.Context, userID int64) bool
	// InvalidateCounts, tüm cache'li okunmamış sayıları düşürür.
	// İlişkiler servis dışından silindiğinde (cascade) çağrılır.
	InvalidateCounts()
}

type atRelationService struct {
	repo    repository.AtRelationRepository
	counts  *cache.TTL[int64, int]
	hub     ws.EventPublisher
	timeout time.Duration
	log     logrus.FieldLogger

	// countMu, aynı anda gelen invalidation ile geç kalan Set'in
	// bayat sayıyı geri yazmasını engeller.
	countMu    sync.Mutex
	countGen   map[int64]uint64
	countEpoch uint64
}

type countStamp struct {
	user, epoch uint64
}

// NewAtRelationService, constructor.
// timeout <= 0 ise store çağrıları yalnızca çağıranın context'ine bağlıdır.
func NewAtRelationService(
	repo repository.AtRelationRepository,
	counts *cache.TTL[int64, int],
	hub ws.EventPublisher,
	timeout time.Duration,
	log logrus.FieldLogger,
) AtRelationService {
	return &atRelationService{
		repo:     repo,
		counts:   counts,
		hub:      hub,
		timeout:  timeout,
		log:      log,
		countGen: make(map[int64]uint64),
	}
}

func (s *atRelationService) Create(ctx context.Context, blogID, userID int64) (*models.AtRelation, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	rel, err := s.repo.Create(ctx, blogID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create at relation: %w", err)
	}

	s.invalidate(userID)
	s.hub.BroadcastToUser(userID, ws.Event{Op: ws.OpAtMeCreate, Data: rel})

	return rel, nil
}

func (s *atRelationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	if n, ok := s.counts.Get(userID); ok {
		return n, nil
	}

	gen := s.generation(userID)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	n, err := s.repo.CountByFilter(ctx, models.AtRelationFilter{
		UserID: models.Int64(userID),
		IsRead: models.Bool(false),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread at relations: %w", err)
	}

	s.storeCount(userID, gen, n)
	return n, nil
}

// ListMentioned, kullanıcının bahsedildiği blog'ları (okunmuş + okunmamış)
// blog id azalan sırada, sayfa sayfa döner.
func (s *atRelationService) ListMentioned(ctx context.Context, userID int64, pageIndex, pageSize int) (*models.AtBlogPage, error) {
	if pageIndex < 0 {
		return nil, fmt.Errorf("%w: page index must not be negative", pkg.ErrBadRequest)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", pkg.ErrBadRequest)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	count, records, err := s.repo.FindBlogsByUser(ctx, userID, pageSize, pageIndex*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentioned blogs: %w", err)
	}

	views := FormatBlogs(records)
	for i := range views {
		views[i].User = FormatUser(records[i].Author)
	}

	return &models.AtBlogPage{Count: count, BlogList: views}, nil
}

// Update, boş patch'te store'a gitmeden false döner.
func (s *atRelationService) Update(ctx context.Context, patch models.AtRelationPatch, filter models.AtRelationFilter) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	affected, err := s.repo.Update(ctx, patch, filter)
	if err != nil {
		return false, fmt.Errorf("failed to update at relations: %w", err)
	}

	if affected > 0 {
		if filter.UserID != nil {
			s.invalidate(*filter.UserID)
		} else {
			s.invalidateAll()
		}
	}

	return affected > 0, nil
}

func (s *atRelationService) MarkAllRead(ctx context.Context, userID int64) bool {
	changed, err := s.Update(ctx,
		models.AtRelationPatch{IsRead: models.Bool(true)},
		models.AtRelationFilter{UserID: models.Int64(userID), IsRead: models.Bool(false)},
	)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to mark mentions as read")
		return false
	}

	if changed {
		s.hub.BroadcastToUser(userID, ws.Event{Op: ws.OpAtMeCount, Data: ws.AtMeCountData{Count: 0}})
	}

	return changed
}

func (s *atRelationService) InvalidateCounts() {
	s.invalidateAll()
}

func (s *atRelationService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *atRelationService) generation(userID int64) countStamp {
	s.countMu.Lock()
	defer s.countMu.Unlock()
	return countStamp{user: s.countGen[userID], epoch: s.countEpoch}
}

// storeCount, okuma sırasında invalidation olduysa sayıyı cache'e yazmaz.
func (s *atRelationService) storeCount(userID int64, gen countStamp, n int) {
	s.countMu.Lock()
	defer s.countMu.Unlock()

	if gen == (countStamp{user: s.countGen[userID], epoch: s.countEpoch}) {
		s.counts.Set(userID, n)
	}
}

func (s *atRelationService) invalidate(userID int64) {
	s.countMu.Lock()
	defer s.countMu.Unlock()

	s.countGen[userID]++
	s.counts.Delete(userID)
}

func (s *atRelationService) invalidateAll() {
	s.countMu.Lock()
	defer s.countMu.Unlock()

	s.countEpoch++
	s.counts.Clear()
}
