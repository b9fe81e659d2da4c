package media

import (
	"bytes"
	"context"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	// Formats accepted for post images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// Upper bound of an accepted upload, in bytes.
	MaxImageSize = 10 << 20
)

var (
	ErrNotAnImage    = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")
	ErrImageTooLarge = errors.New("image is too large")

	imageExtensions = []string{".gif", ".jpg", ".jpeg", ".png"}
)

// ImageStore persists uploaded post images and turns their keys into urls.
type ImageStore interface {
	Store(ctx context.Context, key string, contentType string, body io.Reader) error
	GetUrlFromKey(key string) string
}

// Image is an upload that has been read and verified to decode as an image.
type Image struct {
	FileName    string
	ContentType string
	Format      string
	Data        []byte
}

// ReadImage reads an uploaded file and checks that it is a gif, jpeg or png.
func ReadImage(header *multipart.FileHeader) (*Image, error) {
	if header.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "fail to open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "fail to read upload")
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}
	return &Image{
		FileName:    header.Filename,
		ContentType: "image/" + format,
		Format:      format,
		Data:        data,
	}, nil
}

// GenerateImageKey builds a unique key under the post image prefix, keeping
// the uploaded extension when it is a known image one.
func GenerateImageKey(img *Image) string {
	ext := strings.ToLower(filepath.Ext(img.FileName))
	if !utils.ContainsString(imageExtensions, ext) {
		ext = "." + img.Format
	}
	return model.PostImagePrefix + uuid.New().String() + ext
}

// SaveImage stores img under a freshly generated key and returns the key.
func SaveImage(ctx context.Context, store ImageStore, img *Image) (string, error) {
	key := GenerateImageKey(img)
	if err := store.Store(ctx, key, img.ContentType, bytes.NewReader(img.Data)); err != nil {
		return "", errors.Wrap(err, "fail to store image")
	}
	return key, nil
}
