package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/ws"
)

func TestAtRelationServiceNoMentions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "bob")

	count, err := env.at.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	page, err := env.at.ListMentioned(ctx, u.ID, 0, models.PageSize)
	require.NoError(t, err)
	require.Zero(t, page.Count)
	require.NotNil(t, page.BlogList)
	require.Empty(t, page.BlogList)
}

func TestAtRelationServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	bob := env.user(t, "bob")

	before, err := env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)

	rel, err := env.at.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
	require.NoError(t, err)
	require.False(t, rel.IsRead)

	// cache'teki 0 invalidate edilmiş olmalı
	after, err := env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, before+1, after)

	require.Equal(t, []string{ws.OpAtMeCreate}, env.pub.ops(bob.ID))
	require.Empty(t, env.pub.ops(author.ID))
}

func TestAtRelationServiceMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	bob := env.user(t, "bob")

	for i := 0; i < 3; i++ {
		_, err := env.at.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
		require.NoError(t, err)
	}

	count, err := env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.True(t, env.at.MarkAllRead(ctx, bob.ID))
	require.False(t, env.at.MarkAllRead(ctx, bob.ID))

	count, err = env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	ops := env.pub.ops(bob.ID)
	require.Equal(t, ws.OpAtMeCount, ops[len(ops)-1])
	require.Len(t, ops, 4, "second mark-all-read pushes nothing")

	// okunanlar listede kalır
	page, err := env.at.ListMentioned(ctx, bob.ID, 0, models.PageSize)
	require.NoError(t, err)
	require.Equal(t, 3, page.Count)
	for _, v := range page.BlogList {
		require.True(t, v.AtRelation.IsRead)
	}
}

func TestAtRelationServiceMarkAllReadStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bob := env.user(t, "bob")

	require.NoError(t, env.db.Close())

	require.False(t, env.at.MarkAllRead(ctx, bob.ID))

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, bob.ID, entry.Data["user_id"])
	require.Contains(t, entry.Data, logrus.ErrorKey)
	require.Empty(t, env.pub.ops(bob.ID))
}

func TestAtRelationServicePagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	bob := env.user(t, "bob")

	for i := 0; i < 25; i++ {
		_, err := env.at.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
		require.NoError(t, err)
	}

	var sizes []int
	var ids []int64
	for page := 0; page < 4; page++ {
		res, err := env.at.ListMentioned(ctx, bob.ID, page, 10)
		require.NoError(t, err)
		require.Equal(t, 25, res.Count)
		sizes = append(sizes, len(res.BlogList))
		for _, v := range res.BlogList {
			ids = append(ids, v.ID)
			require.Equal(t, "alice", v.User.UserName)
			require.Equal(t, DefaultPicture, v.User.Picture)
			require.NotEmpty(t, v.CreatedAtFormat)
		}
	}

	require.Equal(t, []int{10, 10, 5, 0}, sizes)
	require.Len(t, ids, 25)
	for i := 1; i < len(ids); i++ {
		require.Greater(t, ids[i-1], ids[i])
	}
}

func TestAtRelationServiceBadPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.at.ListMentioned(ctx, 1, -1, 5)
	require.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = env.at.ListMentioned(ctx, 1, 0, 0)
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestAtRelationServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	bob := env.user(t, "bob")
	_, err := env.at.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
	require.NoError(t, err)

	changed, err := env.at.Update(ctx, models.AtRelationPatch{}, models.AtRelationFilter{UserID: models.Int64(bob.ID)})
	require.NoError(t, err)
	require.False(t, changed)

	count, err := env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// filtre olmadan güncelleme tüm kullanıcıların cache'ini düşürür
	changed, err = env.at.Update(ctx, models.AtRelationPatch{IsRead: models.Bool(true)}, models.AtRelationFilter{})
	require.NoError(t, err)
	require.True(t, changed)

	count, err = env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestAtRelationServiceUserSevenScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.db.Conn.Exec(`INSERT INTO users (id, user_name, password, nick_name, picture) VALUES (1, 'author', 'h', 'Author', '/a.png'), (7, 'seven', 'h', 'Seven', '')`)
	require.NoError(t, err)
	_, err = env.db.Conn.Exec(`INSERT INTO blogs (id, user_id, content) VALUES (101, 1, 'a @seven'), (102, 1, 'b @seven'), (103, 1, 'c @seven')`)
	require.NoError(t, err)
	_, err = env.db.Conn.Exec(`INSERT INTO at_relations (blog_id, user_id, is_read) VALUES (101, 7, 0), (102, 7, 1), (103, 7, 0)`)
	require.NoError(t, err)

	count, err := env.at.CountUnread(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	page, err := env.at.ListMentioned(ctx, 7, 0, models.PageSize)
	require.NoError(t, err)
	require.Equal(t, 3, page.Count)

	var ids []int64
	for _, v := range page.BlogList {
		ids = append(ids, v.ID)
		require.Equal(t, models.PublicUser{UserName: "author", NickName: "Author", Picture: "/a.png"}, v.User)
	}
	require.Equal(t, []int64{103, 102, 101}, ids)
}

func TestAtRelationServiceCanceledContext(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cache boş: sayım store'a gider
	_, err := env.at.CountUnread(ctx, 1)
	require.Error(t, err)

	_, err = env.at.ListMentioned(ctx, 1, 0, models.PageSize)
	require.Error(t, err)
}

func TestAtRelationServiceInvalidateCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")

	_, err := env.at.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
	require.NoError(t, err)

	for _, u := range []*models.User{bob, carol} {
		_, err := env.at.CountUnread(ctx, u.ID)
		require.NoError(t, err)
	}

	// servisi atlayan yazımlar
	_, err = env.rels.Create(ctx, env.blog(t, author.ID).ID, bob.ID)
	require.NoError(t, err)
	_, err = env.rels.Create(ctx, env.blog(t, author.ID).ID, carol.ID)
	require.NoError(t, err)

	count, err := env.at.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count, "served from cache until invalidated")

	env.at.InvalidateCounts()

	for _, u := range []*models.User{bob, carol} {
		count, err := env.at.CountUnread(ctx, u.ID)
		require.NoError(t, err)

		page, err := env.at.ListMentioned(ctx, u.ID, 0, models.PageSize)
		require.NoError(t, err)
		require.Equal(t, page.Count, count, u.UserName)
	}
}
