package server

import (
	"net/http"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/paginator"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/gin-gonic/gin"
)

// IndexHandler lists every post, newest first. It is the busiest page and is
// meant to be wrapped by the page cache.
func IndexHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, page, err := st.ListPosts(c.Query(paginator.PageQueryParam))
		if err != nil {
			handleError(c, err)
			return
		}
		render(c, http.StatusOK, TemplateIndex, gin.H{
			"title":    "Главная страница",
			"page_obj": newPageView(posts, page, images),
		})
	}
}

// GroupPostsHandler lists the posts of the group named by :slug.
func GroupPostsHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := st.GetGroupBySlug(c.Param("slug"))
		if err != nil {
			handleError(c, err)
			return
		}
		posts, page, err := st.ListGroupPosts(group, c.Query(paginator.PageQueryParam))
		if err != nil {
			handleError(c, err)
			return
		}
		render(c, http.StatusOK, TemplateGroupList, gin.H{
			"title":    "Посты группы",
			"group":    newGroupView(group),
			"page_obj": newPageView(posts, page, images),
		})
	}
}

// ProfileHandler lists the posts of the user named by :username and whether
// the caller follows them.
func ProfileHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		author, err := st.GetUserByUsername(c.Param("username"))
		if err != nil {
			handleError(c, err)
			return
		}
		posts, page, err := st.ListAuthorPosts(author, c.Query(paginator.PageQueryParam))
		if err != nil {
			handleError(c, err)
			return
		}
		following, err := st.IsFollowing(middlewares.CurrentUser(c), author)
		if err != nil {
			handleError(c, err)
			return
		}
		render(c, http.StatusOK, TemplateProfile, gin.H{
			"title":       "Профиль",
			"author":      newUserView(author),
			"following":   following,
			"posts_count": page.Count,
			"page_obj":    newPageView(posts, page, images),
		})
	}
}

// FollowIndexHandler lists posts of the authors the caller follows. It must
// run behind LoginRequired.
func FollowIndexHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, page, err := st.ListFollowedPosts(middlewares.CurrentUser(c), c.Query(paginator.PageQueryParam))
		if err != nil {
			handleError(c, err)
			return
		}
		render(c, http.StatusOK, TemplateFollow, gin.H{
			"title":    "Подписки",
			"page_obj": newPageView(posts, page, images),
		})
	}
}
