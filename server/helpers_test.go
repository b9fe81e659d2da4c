package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Luismorlan/blogmux/cache"
	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testLoginURL = "/auth/login/"
	authToken    = "auth-token"
	otherToken   = "other-token"
)

// Two pixel gif, one white and one black.
var smallGif = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	store     *store.Store
	pageCache cache.PageCache
	mediaRoot string
	auth      *model.User
	other     *model.User
}

func prepareTestServer(t *testing.T) *testServer {
	db, _ := utils.CreateTempDB(t)
	st := store.New(db)
	mediaRoot := t.TempDir()
	images, err := media.NewLocalImageStore(mediaRoot, "/media/")
	require.Nil(t, err)
	pageCache, err := cache.NewMemoryPageCache(64)
	require.Nil(t, err)

	router := gin.New()
	AddRoutes(router, Dependencies{
		Store:     st,
		Images:    images,
		PageCache: pageCache,
		Auth:      middlewares.StaticAuthenticator{authToken: "auth", otherToken: "other"},
		LoginURL:  testLoginURL,
	})

	auth, err := st.GetOrCreateUser("auth")
	require.Nil(t, err)
	other, err := st.GetOrCreateUser("other")
	require.Nil(t, err)

	return &testServer{
		router:    router,
		store:     st,
		pageCache: pageCache,
		mediaRoot: mediaRoot,
		auth:      auth,
		other:     other,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, uri string, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return s.do(t, httptest.NewRequest(http.MethodGet, uri, nil), token, cookies...)
}

func (s *testServer) postForm(t *testing.T, uri string, token string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, uri, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req, token)
}

func (s *testServer) postMultipart(t *testing.T, uri string, token string, values map[string]string, fileName string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.Nil(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("image", fileName)
		require.Nil(t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.Nil(t, err)
	}
	require.Nil(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, uri, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(t, req, token)
}

func (s *testServer) mustGroup(t *testing.T, title, slug string) *model.Group {
	group := &model.Group{Title: title, Slug: slug, Description: "Тестовое описание"}
	require.Nil(t, s.store.CreateGroup(group))
	return group
}

func (s *testServer) mustPost(t *testing.T, author *model.User, group *model.Group, text string) *model.Post {
	post := &model.Post{Text: text, AuthorID: author.Id}
	if group != nil {
		post.GroupID = &group.Id
	}
	require.Nil(t, s.store.CreatePost(post))
	return post
}

func (s *testServer) countRows(t *testing.T, m interface{}) int64 {
	var n int64
	require.Nil(t, s.store.DB.Model(m).Count(&n).Error)
	return n
}

type formResponse struct {
	Fields []string          `json:"fields"`
	Values map[string]string `json:"values"`
	Errors FieldErrors       `json:"errors"`
	Groups []GroupView       `json:"groups"`
}

type documentResponse struct {
	Template string   `json:"template"`
	Messages []string `json:"messages"`
	Context  struct {
		Title      string        `json:"title"`
		PageObj    PageView      `json:"page_obj"`
		Group      *GroupView    `json:"group"`
		Author     *UserView     `json:"author"`
		Following  bool          `json:"following"`
		PostsCount int64         `json:"posts_count"`
		Post       *PostView     `json:"post"`
		Comments   []CommentView `json:"comments"`
		Form       formResponse  `json:"form"`
		IsEdit     bool          `json:"is_edit"`
	} `json:"context"`
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) documentResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var doc documentResponse
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func postTexts(page PageView) []string {
	texts := []string{}
	for _, post := range page.ObjectList {
		texts = append(texts, post.Text)
	}
	return texts
}
