package adapters

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// FetchViaProxy は API のダウンロードプロキシ経由で結果メディアを取得します。
func (c *StudioClient) FetchViaProxy(ctx context.Context, mediaURL string) (*domain.MediaPayload, error) {
	endpoint := c.endpoints.APIBaseURL + "/download-proxy?url=" + url.QueryEscape(mediaURL)
	return c.fetchMedia(ctx, endpoint)
}

// FetchDirect はキャッシュバスターを付けて結果メディアを直接取得します。
func (c *StudioClient) FetchDirect(ctx context.Context, mediaURL string) (*domain.MediaPayload, error) {
	return c.fetchMedia(ctx, withCacheBuster(mediaURL, c.now().UnixMilli()))
}

func (c *StudioClient) fetchMedia(ctx context.Context, endpoint string) (*domain.MediaPayload, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	body, header, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return &domain.MediaPayload{
		Data:        body,
		ContentType: header.Get("Content-Type"),
	}, nil
}

// withCacheBuster は既存のクエリの有無に応じて t=<millis> を付け足します。
func withCacheBuster(rawURL string, millis int64) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "t=" + strconv.FormatInt(millis, 10)
}
