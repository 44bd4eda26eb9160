package adapters

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// RequestUploadURL はファイル名をキーに書き込み用の署名付きURLを取得します。
func (c *StudioClient) RequestUploadURL(ctx context.Context, fileName string) (string, error) {
	endpoint := c.endpoints.APIBaseURL + "/get-emd-upload-url?fileName=" + url.QueryEscape(fileName)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	body, _, err := c.send(req)
	if err != nil {
		return "", fmt.Errorf("署名付きURLの取得に失敗しました: %w", err)
	}

	signedURL := strings.TrimSpace(string(body))
	if signedURL == "" {
		return "", fmt.Errorf("署名付きURLが空です")
	}
	slog.DebugContext(ctx, "署名付きURLを取得しました", "file_name", fileName)
	return signedURL, nil
}

// PutObject は署名付きURLへファイルの生バイトを認証なしで PUT します。
func (c *StudioClient) PutObject(ctx context.Context, signedURL, contentType string, data []byte) error {
	req, err := c.newRequest(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	if _, _, err := c.send(req); err != nil {
		return fmt.Errorf("ファイルのアップロードに失敗しました: %w", err)
	}
	return nil
}

// PublicURL はファイル名から公開URLを決定的に組み立てます。追加の通信は行いません。
func (c *StudioClient) PublicURL(fileName string) string {
	return c.endpoints.PublicBaseURL + "/" + fileName
}
