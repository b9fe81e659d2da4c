package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luismorlan/blogmux/store"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLoginURL = "/auth/login/"

func init() {
	gin.SetMode(gin.TestMode)
}

func prepareAuthRouter(t *testing.T) (*gin.Engine, *store.Store) {
	db, _ := utils.CreateTempDB(t)
	st := store.New(db)
	router := gin.New()
	router.Use(Identify(StaticAuthenticator{"good-token": "auth"}, st))
	router.GET("/whoami", func(c *gin.Context) {
		username := ""
		if user := CurrentUser(c); user != nil {
			username = user.Username
		}
		c.String(http.StatusOK, username)
	})
	router.GET("/private/", LoginRequired(testLoginURL), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})
	return router, st
}

func TestStaticAuthenticator(t *testing.T) {
	auth := StaticAuthenticator{"good-token": "auth"}
	username, err := auth.Authenticate(context.Background(), "good-token")
	require.Nil(t, err)
	assert.Equal(t, "auth", username)

	_, err = auth.Authenticate(context.Background(), "bad-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestIdentify(t *testing.T) {
	router, st := prepareAuthRouter(t)

	testCases := []struct {
		name     string
		prepare  func(r *http.Request)
		expected string
	}{
		{"anonymous", func(r *http.Request) {}, ""},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good-token") }, "auth"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "good-token"}) }, "auth"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=good-token" }, "auth"},
		{"rejected token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad-token") }, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tc.prepare(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.expected, w.Body.String())
		})
	}

	// The identified user is mirrored locally exactly once.
	user, err := st.GetUserByUsername("auth")
	require.Nil(t, err)
	assert.Equal(t, "auth", user.Username)
}

func TestLoginRequired(t *testing.T) {
	router, _ := prepareAuthRouter(t)

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private/?page=2", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginURL(testLoginURL, "/private/?page=2"), w.Header().Get("Location"))
		assert.Equal(t, "/auth/login/?next=%2Fprivate%2F%3Fpage%3D2", w.Header().Get("Location"))
	})

	t.Run("identified caller passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "secret", w.Body.String())
	})
}
