package server

import (
	"mime/multipart"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/store"
	"github.com/pkg/errors"
)

const (
	// Comments must be strictly longer than this many characters.
	NumOfLetters = 10

	MsgRequired        = "Обязательное поле."
	MsgCommentTooShort = "Кажется ты что забыл сделать! Поле обязательно для заполнения"
	MsgInvalidGroup    = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
	MsgInvalidImage    = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	MsgImageTooLarge   = "Размер изображения слишком большой."
)

var (
	PostFormFields    = []string{"text", "group", "image"}
	CommentFormFields = []string{"text"}
)

// FieldErrors maps a form field to its validation messages. An empty map
// means the form is valid.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// PostForm is the raw submission of the post create and edit forms.
type PostForm struct {
	Text       string `form:"text"`
	Group      string `form:"group"`
	ImageClear string `form:"image-clear"`
}

// CleanedPost is a validated PostForm. Image is nil when nothing was
// uploaded.
type CleanedPost struct {
	Text       string
	GroupID    *uint
	Image      *media.Image
	ClearImage bool
}

// CleanPostForm validates a post submission. It returns either the cleaned
// value or the errors of every invalid field, never both. Errors other than
// validation failures (the store being down) are returned as err.
func CleanPostForm(st *store.Store, form PostForm, upload *multipart.FileHeader) (*CleanedPost, FieldErrors, error) {
	fieldErrors := FieldErrors{}
	cleaned := &CleanedPost{
		Text:       strings.TrimSpace(form.Text),
		ClearImage: form.ImageClear != "",
	}

	if cleaned.Text == "" {
		fieldErrors.Add("text", MsgRequired)
	}

	if raw := strings.TrimSpace(form.Group); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fieldErrors.Add("group", MsgInvalidGroup)
		} else if group, err := st.GetGroup(uint(id)); err == nil {
			cleaned.GroupID = &group.Id
		} else if errors.Is(err, store.ErrNotFound) {
			fieldErrors.Add("group", MsgInvalidGroup)
		} else {
			return nil, nil, err
		}
	}

	if upload != nil {
		img, err := media.ReadImage(upload)
		switch {
		case err == nil:
			cleaned.Image = img
		case errors.Is(err, media.ErrImageTooLarge):
			fieldErrors.Add("image", MsgImageTooLarge)
		default:
			fieldErrors.Add("image", MsgInvalidImage)
		}
	}

	if !fieldErrors.Valid() {
		return nil, fieldErrors, nil
	}
	return cleaned, nil, nil
}

// PostFormValues are the current values of a post form, echoed back when it
// is rendered.
func PostFormValues(form PostForm) map[string]string {
	return map[string]string{"text": form.Text, "group": form.Group}
}

// PostFormFromPost pre-fills the edit form from an existing post.
func PostFormFromPost(post *model.Post) PostForm {
	form := PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return form
}

type CommentForm struct {
	Text string `form:"text"`
}

type CleanedComment struct {
	Text string
}

// CleanCommentForm requires a comment longer than NumOfLetters characters.
func CleanCommentForm(form CommentForm) (*CleanedComment, FieldErrors) {
	fieldErrors := FieldErrors{}
	text := strings.TrimSpace(form.Text)
	switch {
	case text == "":
		fieldErrors.Add("text", MsgRequired)
	case utf8.RuneCountInString(text) <= NumOfLetters:
		fieldErrors.Add("text", MsgCommentTooShort)
	}
	if !fieldErrors.Valid() {
		return nil, fieldErrors
	}
	return &CleanedComment{Text: text}, nil
}
