package server

import (
	"context"

	"github.com/Luismorlan/blogmux/app_setting"
	"github.com/Luismorlan/blogmux/cache"
	"github.com/Luismorlan/blogmux/media"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/store"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// NewPageCache creates the page cache backend named by setting.
func NewPageCache(ctx context.Context, setting app_setting.ServerAppSetting) (cache.PageCache, error) {
	if setting.CACHE_BACKEND == app_setting.CacheBackendRedis {
		return cache.GetRedisPageCache(ctx)
	}
	return cache.NewMemoryPageCache(setting.MEMORY_CACHE_SIZE)
}

// NewImageStore creates the media backend named by setting.
func NewImageStore(setting app_setting.ServerAppSetting) (media.ImageStore, error) {
	if setting.MEDIA_BACKEND == app_setting.MediaBackendS3 {
		return media.NewS3ImageStore(setting.S3_REGION, setting.S3_BUCKET, setting.S3_URL_PREFIX)
	}
	return media.NewLocalImageStore(setting.MEDIA_ROOT, setting.MEDIA_URL)
}

// NewAuthenticator creates the token validation backend named by setting.
func NewAuthenticator(ctx context.Context, setting app_setting.ServerAppSetting) (middlewares.Authenticator, error) {
	if setting.AUTH_BACKEND == app_setting.AuthBackendStatic {
		return middlewares.StaticAuthenticator(setting.STATIC_TOKENS), nil
	}
	return middlewares.NewCognitoAuthenticator(ctx)
}

// NewDependencies wires every backend the routes need from setting.
func NewDependencies(ctx context.Context, db *gorm.DB, setting app_setting.ServerAppSetting) (Dependencies, error) {
	deps := Dependencies{Store: store.New(db), LoginURL: setting.LOGIN_URL}
	var err error
	if deps.Images, err = NewImageStore(setting); err != nil {
		return deps, errors.Wrap(err, "fail to create image store")
	}
	if deps.PageCache, err = NewPageCache(ctx, setting); err != nil {
		return deps, errors.Wrap(err, "fail to create page cache")
	}
	if deps.Auth, err = NewAuthenticator(ctx, setting); err != nil {
		return deps, errors.Wrap(err, "fail to create authenticator")
	}
	return deps, nil
}
