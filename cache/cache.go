// Package cache stores fully rendered responses for a fixed time window.
package cache

import (
	"context"
	"time"
)

// Page is a rendered response as it was sent to the client.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache is a time-windowed key-value store of rendered pages. Keys never
// vary by user, every caller sees the same response within the window.
type PageCache interface {
	// Get returns the page cached under key, ok is false on a miss.
	Get(ctx context.Context, key string) (page *Page, ok bool, err error)
	// Set stores page under key for ttl, overwriting any previous value.
	Set(ctx context.Context, key string, page *Page, ttl time.Duration) error
	// Clear evicts every cached page.
	Clear(ctx context.Context) error
}
