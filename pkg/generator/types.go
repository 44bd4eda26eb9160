package generator

import (
	"context"
	"time"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxPolls     = 60
)

// View に渡す状態テキスト
const (
	msgUploading  = "UPLOADING..."
	msgReady      = "READY"
	msgSubmitting = "SUBMITTING JOB..."
	msgQueued     = "JOB QUEUED..."
	msgProcessing = "PROCESSING... (%d)"
	msgComplete   = "COMPLETE"
	msgError      = "ERROR"
)

// IDGenerator は指定長のランダムIDを返します。
type IDGenerator func(size int) (string, error)

// SleepFunc はポーリング間隔の待機です。ctx が終了したら ctx.Err() を返します。
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option は Controller の設定関数です。
type Option func(*Controller)

// WithPollInterval はステータス確認の間隔を設定します。
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxPolls はタイムアウトとみなすまでの最大確認回数を設定します。
func WithMaxPolls(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxPolls = n
		}
	}
}

// WithIDGenerator はファイル名用のID生成関数を差し替えます。
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithSleep はポーリング待機の実装を差し替えます。
func WithSleep(sleep SleepFunc) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// sleepContext はタイマーと ctx の早い方で復帰する待機です。
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
