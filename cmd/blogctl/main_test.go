package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/blogmux/cache"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/store"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	env       *cliEnv
	store     *store.Store
	pageCache *cache.MemoryPageCache
}

func prepareTestEnv(t *testing.T) *testEnv {
	db, _ := utils.CreateTempDB(t)
	pageCache, err := cache.NewMemoryPageCache(8)
	require.Nil(t, err)
	return &testEnv{
		env: &cliEnv{
			openDB: func() (*gorm.DB, error) { return db, nil },
			openPageCache: func(ctx context.Context, settingPath string) (cache.PageCache, error) {
				return pageCache, nil
			},
		},
		store:     store.New(db),
		pageCache: pageCache,
	}
}

func (e *testEnv) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(e.env)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGroupCommands(t *testing.T) {
	e := prepareTestEnv(t)

	out, err := e.run("group", "create", "--title", "Тестовая группа", "--slug", "test-slug", "--description", "Тестовое описание")
	require.Nil(t, err, out)
	assert.Contains(t, out, "test-slug")

	group, err := e.store.GetGroupBySlug("test-slug")
	require.Nil(t, err)
	assert.Equal(t, "Тестовая группа", group.Title)

	_, err = e.run("group", "create", "--title", "Дубликат", "--slug", "test-slug")
	assert.NotNil(t, err)

	_, err = e.run("group", "create", "--title", "Без адреса")
	assert.NotNil(t, err)

	out, err = e.run("group", "list")
	require.Nil(t, err)
	assert.Contains(t, out, "test-slug\tТестовая группа")

	author, err := e.store.GetOrCreateUser("auth")
	require.Nil(t, err)
	post := &model.Post{Text: "text", AuthorID: author.Id, GroupID: &group.Id}
	require.Nil(t, e.store.CreatePost(post))

	_, err = e.run("group", "delete", "test-slug")
	require.Nil(t, err)
	post, err = e.store.GetPost(post.Id)
	require.Nil(t, err)
	assert.Nil(t, post.GroupID)

	_, err = e.run("group", "delete", "test-slug")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	e := prepareTestEnv(t)
	author, err := e.store.GetOrCreateUser("auth")
	require.Nil(t, err)
	require.Nil(t, e.store.CreatePost(&model.Post{Text: "text", AuthorID: author.Id}))

	_, err = e.run("user", "delete", "auth")
	require.Nil(t, err)

	_, err = e.store.GetUserByUsername("auth")
	assert.ErrorIs(t, err, store.ErrNotFound)
	var posts int64
	require.Nil(t, e.store.DB.Model(&model.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(0), posts)

	_, err = e.run("user", "delete", "auth")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCacheClear(t *testing.T) {
	e := prepareTestEnv(t)
	ctx := context.Background()
	require.Nil(t, e.pageCache.Set(ctx, "/", &cache.Page{Status: 200, Body: []byte("{}")}, time.Minute))

	out, err := e.run("cache", "clear")
	require.Nil(t, err, out)

	_, ok, err := e.pageCache.Get(ctx, "/")
	require.Nil(t, err)
	assert.False(t, ok)
}

func TestMigrateIsRepeatable(t *testing.T) {
	e := prepareTestEnv(t)
	for i := 0; i < 2; i++ {
		_, err := e.run("migrate")
		require.Nil(t, err)
	}
}
