package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// videoGenRequest は /video-gen の本文です。imageUrl は配列で送ります。
type videoGenRequest struct {
	ImageURL        []string `json:"imageUrl"`
	EffectID        string   `json:"effectId"`
	UserID          string   `json:"userId"`
	RemoveWatermark bool     `json:"removeWatermark"`
	Model           string   `json:"model"`
	IsPrivate       bool     `json:"isPrivate"`
}

// imageGenRequest は /image-gen の本文です。
type imageGenRequest struct {
	Model           string `json:"model"`
	ToolType        string `json:"toolType,omitempty"`
	EffectID        string `json:"effectId"`
	ImageURL        string `json:"imageUrl"`
	UserID          string `json:"userId"`
	RemoveWatermark bool   `json:"removeWatermark"`
	IsPrivate       bool   `json:"isPrivate"`
}

func buildJobBody(imageURL string, s domain.JobSettings) any {
	if s.Mode == domain.ModeImage {
		return imageGenRequest{
			Model:           s.Model,
			ToolType:        s.ToolType,
			EffectID:        s.EffectID,
			ImageURL:        imageURL,
			UserID:          s.UserID,
			RemoveWatermark: s.RemoveWatermark,
			IsPrivate:       s.IsPrivate,
		}
	}
	return videoGenRequest{
		ImageURL:        []string{imageURL},
		EffectID:        s.EffectID,
		UserID:          s.UserID,
		RemoveWatermark: s.RemoveWatermark,
		Model:           s.Model,
		IsPrivate:       s.IsPrivate,
	}
}

// SubmitJob は生成ジョブを投入します。2xx 以外は再試行せず ErrSubmit を返します。
func (c *StudioClient) SubmitJob(ctx context.Context, imageURL string, settings domain.JobSettings) (*domain.Job, error) {
	payload, err := json.Marshal(buildJobBody(imageURL, settings))
	if err != nil {
		return nil, fmt.Errorf("リクエスト本文の生成に失敗しました: %w", err)
	}

	endpoint := c.endpoints.APIBaseURL + "/" + settings.Mode.Path()
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmit, err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")

	body, _, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmit, err)
	}

	var job domain.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: レスポンス解析失敗: %w", domain.ErrSubmit, err)
	}
	slog.InfoContext(ctx, "ジョブを投入しました", "job_id", job.ID, "status", job.Status)
	return &job, nil
}

// FetchJobStatus はジョブの現在の状態を1回だけ取得します。
func (c *StudioClient) FetchJobStatus(ctx context.Context, mode domain.GenerationMode, userID, jobID string) (*domain.JobStatusResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s/status",
		c.endpoints.APIBaseURL, mode.Path(), url.PathEscape(userID), url.PathEscape(jobID))

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)

	body, _, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("ステータスの確認に失敗しました: %w", err)
	}

	var status domain.JobStatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("ステータスの解析に失敗しました: %w", err)
	}
	return &status, nil
}
