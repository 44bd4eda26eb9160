package mediautil

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

const (
	// DefaultSourceExtension はファイル名に拡張子が無い場合のアップロード用拡張子です。
	DefaultSourceExtension = "jpg"
	// DefaultResultExtension は Content-Type と URL のどちらからも推定できない場合の拡張子です。
	DefaultResultExtension = "png"
)

var (
	videoSuffixPattern = regexp.MustCompile(`(?i)\.(mp4|webm)(\?.*)?$`)
	urlExtPattern      = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|mp4|webm)`)
)

// IsImageContentType は申告された MIME タイプが画像かどうかを返します。
// 中身の検査は行いません。
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// ExtensionFromName は元ファイル名の拡張子（ドットなし）を返します。無ければ jpg です。
func ExtensionFromName(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return DefaultSourceExtension
	}
	return ext
}

// ExtensionFromContentType は Content-Type ヘッダーから拡張子を推定します。
func ExtensionFromContentType(contentType string) (string, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case ct == "":
		return "", false
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return "jpg", true
	case strings.Contains(ct, "png"):
		return "png", true
	case strings.Contains(ct, "webp"):
		return "webp", true
	case strings.Contains(ct, "mp4"):
		return "mp4", true
	case strings.Contains(ct, "webm"):
		return "webm", true
	}
	return "", false
}

// ExtensionFromURL は URL 中に現れる既知の拡張子を返します。jpeg は jpg に正規化します。
func ExtensionFromURL(rawURL string) (string, bool) {
	m := urlExtPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	ext := strings.ToLower(m[1])
	if ext == "jpeg" {
		ext = "jpg"
	}
	return ext, true
}

// InferExtension は Content-Type → URL → 既定値 の順で保存用拡張子を決めます。
func InferExtension(rawURL, contentType string) string {
	if ext, ok := ExtensionFromContentType(contentType); ok {
		return ext
	}
	if ext, ok := ExtensionFromURL(rawURL); ok {
		return ext
	}
	return DefaultResultExtension
}

// KindFromURL は URL の末尾（クエリ文字列は許容）から動画か画像かを判定します。
func KindFromURL(rawURL string) domain.MediaKind {
	if videoSuffixPattern.MatchString(rawURL) {
		return domain.MediaVideo
	}
	return domain.MediaImage
}
