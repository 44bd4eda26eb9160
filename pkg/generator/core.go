package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/effect-studio-kit/pkg/domain"
	"github.com/shouni/effect-studio-kit/pkg/mediautil"
	"github.com/shouni/effect-studio-kit/pkg/utils"
)

// Controller はアップロード → 投入 → ポーリング → 描画 の一連の流れを管理し、
// セッション状態（アップロード済み画像URLと直近の結果URL）を唯一保持します。
type Controller struct {
	api      StudioAPI
	view     View
	settings domain.JobSettings

	pollInterval time.Duration
	maxPolls     int
	newID        IDGenerator
	sleep        SleepFunc

	mu          sync.Mutex
	uploadedURL string
	resultURL   string
}

// NewController は依存関係を注入して Controller を初期化します。
func NewController(api StudioAPI, view View, settings domain.JobSettings, opts ...Option) (*Controller, error) {
	if api == nil {
		return nil, fmt.Errorf("api is required")
	}
	if view == nil {
		return nil, fmt.Errorf("view is required")
	}
	if settings.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if settings.EffectID == "" {
		return nil, fmt.Errorf("effect id is required")
	}
	if settings.Mode == "" {
		settings.Mode = domain.ModeVideo
	}

	c := &Controller{
		api:          api,
		view:         view,
		settings:     settings,
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
		newID:        utils.NewID,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UploadedURL は直近にアップロードした元画像の公開URLを返します。未アップロードなら空です。
func (c *Controller) UploadedURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploadedURL
}

// UseSourceURL は公開済みの画像URLをアップロードを経ずにセッションの元画像として採用します。
func (c *Controller) UseSourceURL(url string) {
	c.mu.Lock()
	c.uploadedURL = url
	c.mu.Unlock()
	c.view.ShowPreview(url)
	c.view.SetState(domain.StateReady, msgReady)
}

// ResultURL は直近に描画した結果メディアのURLを返します。
func (c *Controller) ResultURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resultURL
}

// DisplayState はセッション状態から静止時の表示モードを再計算します。
func (c *Controller) DisplayState() domain.DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.resultURL != "":
		return domain.StateComplete
	case c.uploadedURL != "":
		return domain.StateReady
	default:
		return domain.StateIdle
	}
}

// Upload は画像を検証し、署名付きURL経由でステージングして公開URLをセッションに保存します。
// 画像でないファイルは通信を一切行わずに拒否します。
func (c *Controller) Upload(ctx context.Context, file domain.SourceFile) (string, error) {
	if !mediautil.IsImageContentType(file.ContentType) {
		c.view.ShowError(domain.ErrNotImage)
		return "", domain.ErrNotImage
	}

	c.view.SetState(domain.StateUploading, msgUploading)

	publicURL, err := c.stage(ctx, file)
	if err != nil {
		c.fail(ctx, err)
		return "", err
	}

	c.mu.Lock()
	c.uploadedURL = publicURL
	c.mu.Unlock()

	slog.InfoContext(ctx, "アップロードが完了しました", "url", publicURL)
	c.view.ShowPreview(publicURL)
	c.view.SetState(domain.StateReady, msgReady)
	return publicURL, nil
}

func (c *Controller) stage(ctx context.Context, file domain.SourceFile) (string, error) {
	id, err := c.newID(utils.DefaultIDLength)
	if err != nil {
		return "", fmt.Errorf("%w: ID生成失敗: %w", domain.ErrUpload, err)
	}
	fileName := id + "." + mediautil.ExtensionFromName(file.Name)

	signedURL, err := c.api.RequestUploadURL(ctx, fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}

	if err := c.api.PutObject(ctx, signedURL, file.ContentType, file.Data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}

	// 途中で失敗した場合も部分アップロードの後始末は行わない
	return c.api.PublicURL(fileName), nil
}

// Generate はアップロード済み画像でジョブを投入し、完了まで待って結果を描画します。
// ctx をキャンセルするとポーリング待機から抜けます。
func (c *Controller) Generate(ctx context.Context) (*domain.GenerationResult, error) {
	imageURL := c.UploadedURL()
	if imageURL == "" {
		c.view.ShowError(domain.ErrNoSourceImage)
		return nil, domain.ErrNoSourceImage
	}

	c.view.SetState(domain.StateProcessing, msgSubmitting)

	job, err := c.api.SubmitJob(ctx, imageURL, c.settings)
	if err != nil {
		c.fail(ctx, err)
		return nil, err
	}

	c.view.SetState(domain.StateProcessing, msgQueued)

	status, err := c.pollJobStatus(ctx, job.ID)
	if err != nil {
		c.fail(ctx, err)
		return nil, err
	}

	mediaURL, err := status.Result.MediaURL()
	if err != nil {
		slog.WarnContext(ctx, "完了レスポンスにメディアURLがありません", "job_id", job.ID, "status", status.Status)
		c.fail(ctx, err)
		return nil, err
	}

	result := &domain.GenerationResult{
		JobID:    job.ID,
		MediaURL: mediaURL,
		Kind:     mediautil.KindFromURL(mediaURL),
	}

	c.mu.Lock()
	c.resultURL = mediaURL
	c.mu.Unlock()

	slog.InfoContext(ctx, "生成が完了しました", "job_id", job.ID, "url", mediaURL, "kind", result.Kind)
	c.view.ShowResult(mediaURL, result.Kind)
	c.view.SetState(domain.StateComplete, msgComplete)
	return result, nil
}

// Reset はセッション状態と表示をクリアします。
// 実行中のリクエストやポーリングは中断しないため、その後に届いた応答が表示を更新することがあります。
func (c *Controller) Reset() {
	c.mu.Lock()
	c.uploadedURL = ""
	c.resultURL = ""
	c.mu.Unlock()

	c.view.Clear()
	c.view.SetState(domain.StateIdle, "")
}

// fail はビジー表示を解除してエラーを通知します。
func (c *Controller) fail(ctx context.Context, err error) {
	slog.WarnContext(ctx, "処理に失敗しました", "error", err)
	c.view.SetState(domain.StateError, msgError)
	c.view.ShowError(err)
}
