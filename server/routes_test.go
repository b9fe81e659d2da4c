package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIsCached(t *testing.T) {
	s := prepareTestServer(t)
	post := s.mustPost(t, s.auth, nil, "Исходный текст")

	first := s.get(t, "/", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get(middlewares.CacheStatusHeader))

	post.Text = "Изменённый текст"
	require.Nil(t, s.store.UpdatePost(post))

	second := s.get(t, "/", "")
	assert.Equal(t, "hit", second.Header().Get(middlewares.CacheStatusHeader))
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())

	// Identified callers, whatever way they pass their token, get the same
	// stale page.
	for _, w := range []*httptest.ResponseRecorder{
		s.get(t, "/", authToken),
		s.get(t, "/?token="+otherToken, ""),
	} {
		assert.Equal(t, "hit", w.Header().Get(middlewares.CacheStatusHeader))
		assert.Equal(t, first.Body.Bytes(), w.Body.Bytes())
	}

	require.Nil(t, s.pageCache.Clear(context.Background()))
	doc := decodeDocument(t, s.get(t, "/", ""))
	assert.Equal(t, []string{"Изменённый текст"}, postTexts(doc.Context.PageObj))
}

func TestOnlyIndexIsCached(t *testing.T) {
	s := prepareTestServer(t)
	s.mustPost(t, s.auth, nil, "text")

	w := s.get(t, "/profile/auth/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middlewares.CacheStatusHeader))
}

func TestCachedIndexKeepsPendingFlash(t *testing.T) {
	s := prepareTestServer(t)
	s.mustPost(t, s.auth, nil, "text")
	require.Equal(t, http.StatusOK, s.get(t, "/", "").Code)

	pending := &http.Cookie{Name: FlashCookieName, Value: url.QueryEscape(MsgPostCreated)}
	w := s.get(t, "/", authToken, pending)
	assert.Equal(t, "hit", w.Header().Get(middlewares.CacheStatusHeader))
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	// The message is shown by the next page that renders.
	doc := decodeDocument(t, s.get(t, "/profile/auth/", authToken, pending))
	assert.Equal(t, []string{MsgPostCreated}, doc.Messages)
}
