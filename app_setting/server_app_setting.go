package app_setting

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	AuthBackendCognito = "cognito"
	AuthBackendStatic  = "static"
)

// This is the config of the blog api server.
type ServerAppSetting struct {
	// Address the http server listens on.
	LISTEN_ADDR string `yaml:"LISTEN_ADDR"`
	// Anonymous callers of login protected pages are redirected here, with
	// the original uri in the next query parameter.
	LOGIN_URL string `yaml:"LOGIN_URL"`
	// Where uploaded post images live, one of "local" or "s3".
	MEDIA_BACKEND string `yaml:"MEDIA_BACKEND"`
	// Directory holding images for the local media backend.
	MEDIA_ROOT string `yaml:"MEDIA_ROOT"`
	// Url prefix images of the local media backend are served under.
	MEDIA_URL     string `yaml:"MEDIA_URL"`
	S3_BUCKET     string `yaml:"S3_BUCKET"`
	S3_REGION     string `yaml:"S3_REGION"`
	S3_URL_PREFIX string `yaml:"S3_URL_PREFIX"`
	// Backend of the index page cache, one of "memory" or "redis". Redis is
	// shared by every replica, memory is per process.
	CACHE_BACKEND     string `yaml:"CACHE_BACKEND"`
	MEMORY_CACHE_SIZE int    `yaml:"MEMORY_CACHE_SIZE"`
	// Token validation, one of "cognito" or "static".
	AUTH_BACKEND string `yaml:"AUTH_BACKEND"`
	// Token to username table of the static auth backend. Never use it in
	// production.
	STATIC_TOKENS map[string]string `yaml:"STATIC_TOKENS"`
}

func DefaultServerAppSetting() ServerAppSetting {
	return ServerAppSetting{
		LISTEN_ADDR:       ":8080",
		LOGIN_URL:         "/auth/login/",
		MEDIA_BACKEND:     MediaBackendLocal,
		MEDIA_ROOT:        "media",
		MEDIA_URL:         "/media/",
		CACHE_BACKEND:     CacheBackendMemory,
		MEMORY_CACHE_SIZE: 1024,
		AUTH_BACKEND:      AuthBackendCognito,
	}
}

// ParseServerAppSetting reads the yaml file at path on top of the defaults.
func ParseServerAppSetting(path string) (ServerAppSetting, error) {
	c := DefaultServerAppSetting()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "fail to read app setting "+path)
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrap(err, "fail to parse app setting "+path)
	}
	return c, c.Validate()
}

func (c ServerAppSetting) Validate() error {
	switch c.MEDIA_BACKEND {
	case MediaBackendLocal:
	case MediaBackendS3:
		if c.S3_BUCKET == "" || c.S3_REGION == "" {
			return errors.New("s3 media backend requires S3_BUCKET and S3_REGION")
		}
	default:
		return errors.Errorf("unknown MEDIA_BACKEND %q", c.MEDIA_BACKEND)
	}
	if c.CACHE_BACKEND != CacheBackendMemory && c.CACHE_BACKEND != CacheBackendRedis {
		return errors.Errorf("unknown CACHE_BACKEND %q", c.CACHE_BACKEND)
	}
	if c.AUTH_BACKEND != AuthBackendCognito && c.AUTH_BACKEND != AuthBackendStatic {
		return errors.Errorf("unknown AUTH_BACKEND %q", c.AUTH_BACKEND)
	}
	return nil
}
