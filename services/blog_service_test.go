package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

type failingAtService struct {
	AtRelationService
}

func (failingAtService) Create(context.Context, int64, int64) (*models.AtRelation, error) {
	return nil, errors.New("store unavailable")
}

func TestBlogServiceCreateWithMentions(t *testing.T) {
	env := newTestEnv(t)
	log, _ := test.NewNullLogger()
	svc := NewBlogService(env.blogs, env.users, env.at, log)
	ctx := context.Background()

	author := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	blog, err := svc.Create(ctx, author.ID, &models.CreateBlogRequest{Content: "hi @bob @ghost @carol and @bob again"})
	require.NoError(t, err)
	require.NotZero(t, blog.ID)

	for _, u := range []*models.User{bob, carol} {
		count, err := env.at.CountUnread(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count, u.UserName)
	}

	page, err := env.at.ListMentioned(ctx, bob.ID, 0, models.PageSize)
	require.NoError(t, err)
	require.Len(t, page.BlogList, 1)
	require.Equal(t, blog.ID, page.BlogList[0].ID)
}

func TestBlogServiceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	log, _ := test.NewNullLogger()
	svc := NewBlogService(env.blogs, env.users, env.at, log)

	_, err := svc.Create(context.Background(), 1, &models.CreateBlogRequest{Content: "   "})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestBlogServiceMentionFailureIsLogged(t *testing.T) {
	env := newTestEnv(t)
	log, hook := test.NewNullLogger()
	svc := NewBlogService(env.blogs, env.users, failingAtService{}, log)
	ctx := context.Background()

	author := env.user(t, "alice")
	bob := env.user(t, "bob")

	blog, err := svc.Create(ctx, author.ID, &models.CreateBlogRequest{Content: "hey @bob"})
	require.NoError(t, err)

	stored, err := env.blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, "hey @bob", stored.Content)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, bob.ID, entry.Data["user_id"])
	require.Equal(t, blog.ID, entry.Data["blog_id"])
}
