package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// pollJobStatus は固定間隔・最大回数でジョブの状態を確認します。
// 終端は completed（成功）、failed/error（サーバー報告の失敗）、回数切れ（タイムアウト）の3つです。
func (c *Controller) pollJobStatus(ctx context.Context, jobID string) (*domain.JobStatusResponse, error) {
	for attempt := 1; attempt <= c.maxPolls; attempt++ {
		status, err := c.api.FetchJobStatus(ctx, c.settings.Mode, c.settings.UserID, jobID)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "ジョブ状態を確認しました", "job_id", jobID, "poll", attempt, "status", status.Status)

		switch {
		case status.Status.IsSuccess():
			return status, nil
		case status.Status.IsFailure():
			if status.Error == "" {
				return nil, domain.ErrJobFailed
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrJobFailed, status.Error)
		}

		c.view.SetState(domain.StateProcessing, fmt.Sprintf(msgProcessing, attempt))
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w (%d 回確認しても完了しませんでした)", domain.ErrPollTimeout, c.maxPolls)
}
