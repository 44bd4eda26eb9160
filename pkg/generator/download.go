package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/effect-studio-kit/pkg/domain"
	"github.com/shouni/effect-studio-kit/pkg/mediautil"
	"github.com/shouni/effect-studio-kit/pkg/utils"
)

// Download は結果メディアを取得してローカルファイルとして提示します。
// プロキシ → 直接取得 の順に試し、両方失敗したら手動保存を案内します。
// mediaURL が空の場合は直近の結果URLを使います。
func (c *Controller) Download(ctx context.Context, mediaURL string) (*domain.DownloadedFile, error) {
	if mediaURL == "" {
		mediaURL = c.ResultURL()
	}
	if mediaURL == "" {
		c.view.ShowError(domain.ErrNoResult)
		return nil, domain.ErrNoResult
	}

	c.view.SetDownloadBusy(true)
	defer c.view.SetDownloadBusy(false)

	payload, strategy, err := c.fetchWithFallback(ctx, mediaURL)
	if err != nil {
		c.view.ShowManualDownload(mediaURL)
		return nil, fmt.Errorf("%w: %w", domain.ErrDownload, err)
	}

	id, err := c.newID(utils.ShortIDLength)
	if err != nil {
		c.view.ShowError(err)
		return nil, fmt.Errorf("%w: ID生成失敗: %w", domain.ErrDownload, err)
	}

	file := &domain.DownloadedFile{
		Name:        "result_" + id + "." + mediautil.InferExtension(mediaURL, payload.ContentType),
		ContentType: payload.ContentType,
		Data:        payload.Data,
		SourceURL:   mediaURL,
		Strategy:    strategy,
	}

	if err := c.view.OfferDownload(ctx, file); err != nil {
		c.view.ShowError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrDownload, err)
	}

	slog.InfoContext(ctx, "ダウンロードしました", "file", file.Name, "strategy", strategy, "bytes", len(file.Data))
	return file, nil
}

func (c *Controller) fetchWithFallback(ctx context.Context, mediaURL string) (*domain.MediaPayload, domain.DownloadStrategy, error) {
	payload, proxyErr := c.api.FetchViaProxy(ctx, mediaURL)
	if proxyErr == nil {
		return payload, domain.DownloadViaProxy, nil
	}
	slog.WarnContext(ctx, "プロキシ経由の取得に失敗しました。直接取得を試みます", "url", mediaURL, "error", proxyErr)

	payload, directErr := c.api.FetchDirect(ctx, mediaURL)
	if directErr == nil {
		return payload, domain.DownloadViaDirect, nil
	}
	slog.WarnContext(ctx, "直接取得にも失敗しました", "url", mediaURL, "error", directErr)

	return nil, "", errors.Join(
		fmt.Errorf("proxy: %w", proxyErr),
		fmt.Errorf("direct: %w", directErr),
	)
}
