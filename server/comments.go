package server

import (
	"net/http"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/gin-gonic/gin"
)

// AddCommentHandler attaches a comment by the caller to the post :id. An
// invalid comment re-renders the post page with the form errors. It must
// run behind LoginRequired.
func AddCommentHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, comments, err := loadPostWithComments(c, st)
		if err != nil {
			handleError(c, err)
			return
		}

		var form CommentForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		cleaned, fieldErrors := CleanCommentForm(form)
		if !fieldErrors.Valid() {
			renderPostDetail(c, http.StatusOK, post, comments, images, form, fieldErrors)
			return
		}

		comment := &model.Comment{
			PostID:   post.Id,
			AuthorID: middlewares.CurrentUser(c).Id,
			Text:     cleaned.Text,
		}
		if err := st.CreateComment(comment); err != nil {
			handleError(c, err)
			return
		}
		c.Redirect(http.StatusFound, postDetailURL(post.Id))
	}
}
