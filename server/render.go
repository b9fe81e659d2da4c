package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Luismorlan/blogmux/store"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	// Flash messages survive exactly one redirect in this cookie.
	FlashCookieName = "flash"

	TemplateIndex      = "posts/index.html"
	TemplateGroupList  = "posts/group_list.html"
	TemplateProfile    = "posts/profile.html"
	TemplatePostDetail = "posts/post_detail.html"
	TemplateCreatePost = "posts/create_post.html"
	TemplateFollow     = "posts/follow.html"
)

// Document is the rendered form of every page: the template that would
// display it, its context and pending messages.
type Document struct {
	Template string   `json:"template"`
	Context  gin.H    `json:"context"`
	Messages []string `json:"messages"`
}

// flash queues msg for the next rendered page of this client.
func flash(c *gin.Context, msg string) {
	c.SetCookie(FlashCookieName, msg, 0, "/", "", false, true)
}

// popFlash returns the queued message, if any, and clears it.
func popFlash(c *gin.Context) []string {
	msg, err := c.Cookie(FlashCookieName)
	if err != nil || msg == "" {
		return []string{}
	}
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	return []string{msg}
}

// render writes the page as JSON. notices are shown along with flashed
// messages but are not persisted.
func render(c *gin.Context, status int, template string, context gin.H, notices ...string) {
	c.JSON(status, Document{
		Template: template,
		Context:  context,
		Messages: append(popFlash(c), notices...),
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "page not found"})
}

// handleError turns a store error into a 404 for missing records and a 500
// for anything else.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		notFound(c)
		return
	}
	Log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// postID parses the :id url parameter. Ids that can't name a post are
// reported as missing.
func postID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Wrap(store.ErrNotFound, "post "+c.Param("id"))
	}
	return uint(id), nil
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postDetailURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}
