package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const acceptHeader = "application/json, text/plain, */*"

// Endpoints はリモート API と公開ストレージのベース URL です。
type Endpoints struct {
	APIBaseURL    string // 例: https://api.chromastudio.ai
	PublicBaseURL string // 例: https://contents.maxstudio.ai
}

// StudioClient は生成 API の HTTP 契約（署名付きURL、PUT、ジョブ投入、ステータス、ダウンロードプロキシ）を実装します。
type StudioClient struct {
	httpClient   httpkit.ClientInterface
	endpoints    Endpoints
	allowPrivate bool
	now          func() time.Time
}

// Option は StudioClient の設定関数です。
type Option func(*StudioClient)

// WithAllowPrivateNetworks は送信前の SSRF 検証を無効にします。
// httpkit.WithSkipNetworkValidation と同じ値を渡してください。
func WithAllowPrivateNetworks(allow bool) Option {
	return func(c *StudioClient) {
		c.allowPrivate = allow
	}
}

// WithClock はキャッシュバスター用の時刻関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(c *StudioClient) {
		c.now = now
	}
}

// NewStudioClient は依存関係を注入して StudioClient を初期化します。
func NewStudioClient(httpClient httpkit.ClientInterface, endpoints Endpoints, opts ...Option) (*StudioClient, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if endpoints.APIBaseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if endpoints.PublicBaseURL == "" {
		return nil, fmt.Errorf("public base url is required")
	}

	c := &StudioClient{
		httpClient: httpClient,
		endpoints: Endpoints{
			APIBaseURL:    strings.TrimRight(endpoints.APIBaseURL, "/"),
			PublicBaseURL: strings.TrimRight(endpoints.PublicBaseURL, "/"),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newRequest は SSRF 検証を通したうえでリクエストを作ります。
func (c *StudioClient) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	if !c.allowPrivate {
		if safe, err := c.httpClient.IsSafeURL(rawURL); err != nil || !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました (%s): %w", rawURL, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエスト作成失敗 (method: %s): %w", method, err)
	}
	req.Header.Set("User-Agent", httpkit.UserAgent)
	return req, nil
}

// send はリクエストを再試行せずに1回だけ実行し、本文とヘッダーを返します。
// 2xx 以外は httpkit.HandleResponse のエラーになります。
func (c *StudioClient) send(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("HTTPリクエスト失敗 (%s %s): %w", req.Method, req.URL.Redacted(), err)
	}
	header := resp.Header

	body, err := httpkit.HandleResponse(resp)
	if err != nil {
		return nil, nil, err
	}
	return body, header, nil
}
