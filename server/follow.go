package server

import (
	"net/http"

	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/gin-gonic/gin"
)

// ProfileFollowHandler makes the caller follow :username. Following oneself
// or an already followed author changes nothing. It must run behind
// LoginRequired.
func ProfileFollowHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		author, err := st.GetUserByUsername(username)
		if err != nil {
			handleError(c, err)
			return
		}
		if err := st.Follow(middlewares.CurrentUser(c), author); err != nil {
			handleError(c, err)
			return
		}
		c.Redirect(http.StatusFound, profileURL(username))
	}
}

// ProfileUnfollowHandler removes any follow from the caller to :username,
// whether or not one exists. It must run behind LoginRequired.
func ProfileUnfollowHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if err := st.Unfollow(middlewares.CurrentUser(c), username); err != nil {
			handleError(c, err)
			return
		}
		c.Redirect(http.StatusFound, profileURL(username))
	}
}
