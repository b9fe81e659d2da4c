package media

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.Nil(t, err)
	_, err = part.Write(content)
	require.Nil(t, err)
	require.Nil(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.Nil(t, req.ParseMultipartForm(MaxImageSize))
	return req.MultipartForm.File["image"][0]
}

func TestReadImage(t *testing.T) {
	t.Run("valid gif", func(t *testing.T) {
		img, err := ReadImage(fileHeader(t, "small.gif", smallGif))
		require.Nil(t, err)
		assert.Equal(t, "gif", img.Format)
		assert.Equal(t, "image/gif", img.ContentType)
		assert.Equal(t, smallGif, img.Data)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := ReadImage(fileHeader(t, "notes.gif", []byte("definitely not a gif")))
		assert.Equal(t, ErrNotAnImage, err)
	})
}

func TestGenerateImageKey(t *testing.T) {
	key := GenerateImageKey(&Image{FileName: "small.GIF", Format: "gif"})
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".gif"))

	key = GenerateImageKey(&Image{FileName: "upload.exe", Format: "png"})
	assert.True(t, strings.HasSuffix(key, ".png"))

	assert.NotEqual(t, GenerateImageKey(&Image{FileName: "a.gif"}), GenerateImageKey(&Image{FileName: "a.gif"}))
}

func TestLocalImageStore(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalImageStore(root, "/media")
	require.Nil(t, err)

	img, err := ReadImage(fileHeader(t, "small.gif", smallGif))
	require.Nil(t, err)
	key, err := SaveImage(context.Background(), store, img)
	require.Nil(t, err)

	written, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.Nil(t, err)
	assert.Equal(t, smallGif, written)
	assert.Equal(t, "/media/"+key, store.GetUrlFromKey(key))
	assert.Equal(t, "", store.GetUrlFromKey(""))

	err = store.Store(context.Background(), "../escape.gif", "image/gif", bytes.NewReader(smallGif))
	assert.NotNil(t, err)
}
