package server

import (
	"mime/multipart"
	"net/http"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/gin-gonic/gin"
)

const (
	MsgPostCreated = "Пост успешно создан!"
	MsgEditNotice  = "Что бы сохранить изменение не забудьте нажать \"СОХРАНИТЬ ЗАПИСЬ!"
)

// PostDetailHandler shows a post with its comments and an empty comment form.
func PostDetailHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, comments, err := loadPostWithComments(c, st)
		if err != nil {
			handleError(c, err)
			return
		}
		renderPostDetail(c, http.StatusOK, post, comments, images, CommentForm{}, FieldErrors{})
	}
}

func loadPostWithComments(c *gin.Context, st *store.Store) (*model.Post, []model.Comment, error) {
	id, err := postID(c)
	if err != nil {
		return nil, nil, err
	}
	post, err := st.GetPost(id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := st.ListComments(post)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func renderPostDetail(c *gin.Context, status int, post *model.Post, comments []model.Comment, images media.ImageStore, form CommentForm, fieldErrors FieldErrors) {
	render(c, status, TemplatePostDetail, gin.H{
		"title":    "Информация о посте",
		"post":     newPostView(post, images),
		"comments": newCommentViews(comments),
		"form": gin.H{
			"fields": CommentFormFields,
			"values": map[string]string{"text": form.Text},
			"errors": fieldErrors,
		},
	})
}

func renderPostForm(c *gin.Context, st *store.Store, images media.ImageStore, title string, post *model.Post, form PostForm, fieldErrors FieldErrors, notices ...string) {
	groups, err := st.ListGroups()
	if err != nil {
		handleError(c, err)
		return
	}
	context := gin.H{
		"title":   title,
		"is_edit": post != nil,
		"form": gin.H{
			"fields": PostFormFields,
			"values": PostFormValues(form),
			"errors": fieldErrors,
			"groups": newGroupViews(groups),
		},
	}
	if post != nil {
		context["post"] = newPostView(post, images)
	}
	render(c, http.StatusOK, TemplateCreatePost, context, notices...)
}

// bindPostForm reads the submitted text fields.
func bindPostForm(c *gin.Context) (PostForm, error) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		return form, err
	}
	return form, nil
}

// upload returns the submitted image file, nil when there is none or the
// request isn't multipart.
func upload(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return header
}

// PostCreateHandler shows the post form on GET and creates a post authored
// by the caller on a valid POST. It must run behind LoginRequired.
func PostCreateHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	const title = "Создание нового поста"
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			renderPostForm(c, st, images, title, nil, PostForm{}, FieldErrors{})
			return
		}

		form, err := bindPostForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		cleaned, fieldErrors, err := CleanPostForm(st, form, upload(c))
		if err != nil {
			handleError(c, err)
			return
		}
		if !fieldErrors.Valid() {
			renderPostForm(c, st, images, title, nil, form, fieldErrors)
			return
		}

		user := middlewares.CurrentUser(c)
		post := &model.Post{Text: cleaned.Text, GroupID: cleaned.GroupID, AuthorID: user.Id}
		if cleaned.Image != nil {
			err = st.CreatePostWithImage(post, func() (string, error) {
				return media.SaveImage(c.Request.Context(), images, cleaned.Image)
			})
		} else {
			err = st.CreatePost(post)
		}
		if err != nil {
			handleError(c, err)
			return
		}
		flash(c, MsgPostCreated)
		c.Redirect(http.StatusFound, profileURL(user.Username))
	}
}

// PostEditHandler lets the author of a post change its text, group and
// image. Anyone else is sent back to the post. It must run behind
// LoginRequired.
func PostEditHandler(st *store.Store, images media.ImageStore) gin.HandlerFunc {
	const title = "Редактирование поста"
	return func(c *gin.Context) {
		id, err := postID(c)
		if err != nil {
			handleError(c, err)
			return
		}
		post, err := st.GetPost(id)
		if err != nil {
			handleError(c, err)
			return
		}
		if post.AuthorID != middlewares.CurrentUser(c).Id {
			c.Redirect(http.StatusFound, postDetailURL(post.Id))
			return
		}

		if c.Request.Method != http.MethodPost {
			renderPostForm(c, st, images, title, post, PostFormFromPost(post), FieldErrors{}, MsgEditNotice)
			return
		}

		form, err := bindPostForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		cleaned, fieldErrors, err := CleanPostForm(st, form, upload(c))
		if err != nil {
			handleError(c, err)
			return
		}
		if !fieldErrors.Valid() {
			renderPostForm(c, st, images, title, post, form, fieldErrors, MsgEditNotice)
			return
		}

		post.Text = cleaned.Text
		post.GroupID = cleaned.GroupID
		switch {
		case cleaned.Image != nil:
			if post.Image, err = media.SaveImage(c.Request.Context(), images, cleaned.Image); err != nil {
				handleError(c, err)
				return
			}
		case cleaned.ClearImage:
			post.Image = ""
		}
		if err := st.UpdatePost(post); err != nil {
			handleError(c, err)
			return
		}
		c.Redirect(http.StatusFound, postDetailURL(post.Id))
	}
}
