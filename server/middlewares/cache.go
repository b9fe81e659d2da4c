package middlewares

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Luismorlan/blogmux/cache"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/gin-gonic/gin"
)

// Response header telling whether the body was replayed from the page cache.
const CacheStatusHeader = "X-Page-Cache"

// bodyRecorder tees everything the handler writes into a buffer.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheKey is the request path plus its query, so every page of a listing
// is cached on its own. The token query parameter is left out, the key
// never varies by caller.
func CacheKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	query.Del(TokenQueryParam)
	if len(query) == 0 {
		return c.Request.URL.EscapedPath()
	}
	return c.Request.URL.EscapedPath() + "?" + query.Encode()
}

// CachePage serves GET requests from pageCache when a fresh copy exists, and
// stores successful cookie-free responses of the wrapped handler for ttl
// otherwise.
// Within the window every caller gets the same body, even after the
// underlying data changed. Cache failures are logged and the request is
// served uncached.
func CachePage(pageCache cache.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := CacheKey(c)

		page, ok, err := pageCache.Get(ctx, key)
		if err != nil {
			Log.WithError(err).WithField("key", key).Warn("page cache read failed")
		}
		if ok {
			c.Header(CacheStatusHeader, "hit")
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		c.Header(CacheStatusHeader, "miss")
		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		// Responses setting cookies carry per-caller state, never share them.
		if recorder.Status() != http.StatusOK || recorder.Header().Get("Set-Cookie") != "" {
			return
		}
		page = &cache.Page{
			Status:      recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		}
		if err := pageCache.Set(ctx, key, page, ttl); err != nil {
			Log.WithError(err).WithField("key", key).Warn("page cache write failed")
		}
	}
}
