package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg/cache"
	"github.com/akinalp/mblog/repository"
	"github.com/akinalp/mblog/ws"
)

type fakePublisher struct {
	mu     sync.Mutex
	events map[int64][]ws.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(map[int64][]ws.Event)}
}

func (f *fakePublisher) BroadcastToUser(userID int64, event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[userID] = append(f.events[userID], event)
}

func (f *fakePublisher) ops(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ops []string
	for _, e := range f.events[userID] {
		ops = append(ops, e.Op)
	}
	return ops
}

type testEnv struct {
	db    *database.DB
	users repository.UserRepository
	blogs repository.BlogRepository
	rels  repository.AtRelationRepository
	pub   *fakePublisher
	hook  *test.Hook
	at    AtRelationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := database.OpenTest(t)
	log, hook := test.NewNullLogger()
	counts := cache.New[int64, int](time.Minute, 0)
	t.Cleanup(counts.Close)

	env := &testEnv{
		db:    db,
		users: repository.NewSQLiteUserRepo(db.Conn),
		blogs: repository.NewSQLiteBlogRepo(db.Conn),
		rels:  repository.NewSQLiteAtRelationRepo(db.Conn),
		pub:   newFakePublisher(),
		hook:  hook,
	}
	env.at = NewAtRelationService(env.rels, counts, env.pub, time.Second, log)
	return env
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{UserName: name, PasswordHash: "hash", Gender: models.GenderSecret}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) blog(t *testing.T, authorID int64) *models.Blog {
	t.Helper()
	b := &models.Blog{UserID: authorID, Content: "post"}
	require.NoError(t, e.blogs.Create(context.Background(), b))
	return b
}
