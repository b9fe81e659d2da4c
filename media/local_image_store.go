package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalImageStore writes images below a media root folder on disk, they are
// expected to be served from mediaUrl by a static file server.
type LocalImageStore struct {
	root     string
	mediaUrl string
}

func NewLocalImageStore(root string, mediaUrl string) (*LocalImageStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "fail to create media root "+root)
	}
	if !strings.HasSuffix(mediaUrl, "/") {
		mediaUrl += "/"
	}
	return &LocalImageStore{root: root, mediaUrl: mediaUrl}, nil
}

func (s *LocalImageStore) path(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.New("key escapes media root: " + key)
	}
	return path, nil
}

func (s *LocalImageStore) Store(ctx context.Context, key string, contentType string, body io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrap(err, "fail to create media folder")
	}

	//open a file for writing
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "fail to create media file")
	}
	defer file.Close()

	_, err = io.Copy(file, body)
	return errors.Wrap(err, "fail to write media file")
}

func (s *LocalImageStore) GetUrlFromKey(key string) string {
	if key == "" {
		return ""
	}
	return s.mediaUrl + key
}
