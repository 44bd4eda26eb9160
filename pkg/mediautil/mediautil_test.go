package mediautil

import (
	"testing"

	"github.com/shouni/effect-studio-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/png"))
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.False(t, IsImageContentType("video/mp4"))
	assert.False(t, IsImageContentType("application/octet-stream"))
	assert.False(t, IsImageContentType(""))
}

func TestExtensionFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.png", "png"},
		{"archive.tar.gz", "gz"},
		{"Selfie.JPEG", "JPEG"},
		{"no-extension", "jpg"},
		{"", "jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionFromName(tt.name))
		})
	}
}

func TestInferExtension(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        string
	}{
		{"Content-Typeを優先する", "https://x/a.png", "video/mp4", "mp4"},
		{"jpegはjpgになる", "https://x/a", "image/jpeg", "jpg"},
		{"webp", "https://x/a", "image/webp", "webp"},
		{"不明なContent-TypeはURLから推定", "https://x/clip.WEBM?sig=1", "application/octet-stream", "webm"},
		{"URLのjpegもjpgになる", "https://x/photo.jpeg", "", "jpg"},
		{"どちらも無ければpng", "https://x/blob", "", "png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferExtension(tt.url, tt.contentType))
		})
	}
}

func TestKindFromURL(t *testing.T) {
	assert.Equal(t, domain.MediaVideo, KindFromURL("https://x/a.mp4"))
	assert.Equal(t, domain.MediaVideo, KindFromURL("https://x/a.WebM?token=abc"))
	assert.Equal(t, domain.MediaImage, KindFromURL("https://x/b.png"))
	assert.Equal(t, domain.MediaImage, KindFromURL("https://x/a.mp4.png"))
	assert.Equal(t, domain.MediaImage, KindFromURL("https://x/video"))
}
