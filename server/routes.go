package server

import (
	"net/http"
	"time"

	"github.com/Luismorlan/blogmux/cache"
	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/gin-gonic/gin"
)

// Responses of the index stay cached this long, edits show up at most this
// late on the front page.
const IndexCacheTTL = 20 * time.Second

// Dependencies serves as dependency injection for the routes, add any
// dependencies handlers require here.
type Dependencies struct {
	Store     *store.Store
	Images    media.ImageStore
	PageCache cache.PageCache
	Auth      middlewares.Authenticator
	LoginURL  string
}

// AddRoutes mounts every page of the blog on router.
func AddRoutes(router *gin.Engine, deps Dependencies) {
	st, images := deps.Store, deps.Images
	loginRequired := middlewares.LoginRequired(deps.LoginURL)

	router.HandleMethodNotAllowed = true
	router.Use(middlewares.Identify(deps.Auth, st))

	router.GET("/", middlewares.CachePage(deps.PageCache, IndexCacheTTL), IndexHandler(st, images))
	router.GET("/group/:slug/", GroupPostsHandler(st, images))
	router.GET("/follow/", loginRequired, FollowIndexHandler(st, images))
	router.GET("/create/", loginRequired, PostCreateHandler(st, images))
	router.POST("/create/", loginRequired, PostCreateHandler(st, images))

	profile := router.Group("/profile/:username")
	profile.GET("/", ProfileHandler(st, images))
	profile.GET("/follow/", loginRequired, ProfileFollowHandler(st))
	profile.GET("/unfollow/", loginRequired, ProfileUnfollowHandler(st))

	posts := router.Group("/posts/:id")
	posts.GET("/", PostDetailHandler(st, images))
	posts.GET("/edit/", loginRequired, PostEditHandler(st, images))
	posts.POST("/edit/", loginRequired, PostEditHandler(st, images))
	posts.POST("/comment/", loginRequired, AddCommentHandler(st, images))

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		notFound(c)
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "method not allowed"})
	})
}
