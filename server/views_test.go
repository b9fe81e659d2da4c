package server

import (
	"testing"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViews(t *testing.T) {
	images, err := media.NewLocalImageStore(t.TempDir(), "/media/")
	require.Nil(t, err)

	group := &model.Group{Id: 3, Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"}
	post := &model.Post{
		Id:     7,
		Text:   "Тестовый пост",
		Author: model.User{Id: 1, Username: "auth"},
		Group:  group,
		Image:  "posts/a.gif",
	}

	view := newPostView(post, images)
	assert.Equal(t, UserView{Id: 1, Username: "auth"}, view.Author)
	assert.Equal(t, &GroupView{Id: 3, Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"}, view.Group)
	assert.Equal(t, "/media/posts/a.gif", view.ImageUrl)

	post.Group, post.Image = nil, ""
	view = newPostView(post, images)
	assert.Nil(t, view.Group)
	assert.Empty(t, view.ImageUrl)
}
