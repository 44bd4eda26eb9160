package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// API はリモート API と公開ストレージの設定です。
type API struct {
	BaseURL        string `toml:"base_url"`
	PublicBaseURL  string `toml:"public_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// AllowPrivateNetworks はすべての通信で SSRF 検証を止めます。ローカル検証環境向けです。
	AllowPrivateNetworks bool `toml:"allow_private_networks"`
}

// Job はジョブ投入時に送る固定パラメータです。
type Job struct {
	Mode            string `toml:"mode"` // "video" または "image"
	Model           string `toml:"model"`
	ToolType        string `toml:"tool_type"`
	EffectID        string `toml:"effect_id"`
	UserID          string `toml:"user_id"`
	RemoveWatermark bool   `toml:"remove_watermark"`
	IsPrivate       bool   `toml:"is_private"`
}

// Polling はステータス確認の間隔と上限です。
type Polling struct {
	IntervalMillis int `toml:"interval_ms"`
	MaxAttempts    int `toml:"max_attempts"`
}

// Download は結果の保存先設定です。
// OutputDir にはローカルディレクトリのほか gs://bucket/prefix や s3://bucket/prefix も指定できます。
type Download struct {
	OutputDir string `toml:"output_dir"`
}

// Config はアプリケーション全体の設定です。
type Config struct {
	API      API      `toml:"api"`
	Job      Job      `toml:"job"`
	Polling  Polling  `toml:"polling"`
	Download Download `toml:"download"`
}

// Default は既定値で埋めた設定を返します。
func Default() Config {
	return Config{
		API: API{
			BaseURL:        "https://api.chromastudio.ai",
			PublicBaseURL:  "https://contents.maxstudio.ai",
			TimeoutSeconds: 60,
		},
		Job: Job{
			Mode:            string(domain.ModeVideo),
			Model:           "video-effects",
			ToolType:        "video-effects",
			EffectID:        "halloween",
			UserID:          "DObRu1vyStbUynoQmTcHBlhs55z2",
			RemoveWatermark: true,
			IsPrivate:       true,
		},
		Polling: Polling{
			IntervalMillis: 2000,
			MaxAttempts:    60,
		},
		Download: Download{
			OutputDir: ".",
		},
	}
}

// Load は設定ファイルを読み込み、正規化と検証を行います。
// path が空、またはファイルが存在しない場合は既定値を使います。
// 戻り値の bool はファイルを読み込んだかどうかです。
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("設定ファイルを開けませんでした: %w", err)
		default:
			defer file.Close()
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
				return nil, false, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
			}
			exists = true
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.API.PublicBaseURL), "/")
	c.Job.Mode = strings.ToLower(strings.TrimSpace(c.Job.Mode))
	c.Job.EffectID = strings.TrimSpace(c.Job.EffectID)
	c.Job.UserID = strings.TrimSpace(c.Job.UserID)
	if c.Job.Mode == "" {
		c.Job.Mode = string(domain.ModeVideo)
	}
	c.Download.OutputDir = NormalizeOutputDir(c.Download.OutputDir)
}

// NormalizeOutputDir はローカルパスを Clean し、リモート URI は末尾の / だけを落とします。
func NormalizeOutputDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "."
	}
	if remoteio.IsRemoteURI(dir) {
		return strings.TrimRight(dir, "/")
	}
	return filepath.Clean(dir)
}

// Validate は必須項目と値域を確認します。
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url は必須です"))
	}
	if c.API.PublicBaseURL == "" {
		errs = append(errs, errors.New("api.public_base_url は必須です"))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("api.timeout_seconds は正の値にしてください"))
	}
	switch domain.GenerationMode(c.Job.Mode) {
	case domain.ModeVideo, domain.ModeImage:
	default:
		errs = append(errs, fmt.Errorf("job.mode は %q か %q にしてください (指定値: %q)", domain.ModeVideo, domain.ModeImage, c.Job.Mode))
	}
	if c.Job.EffectID == "" {
		errs = append(errs, errors.New("job.effect_id は必須です"))
	}
	if c.Job.UserID == "" {
		errs = append(errs, errors.New("job.user_id は必須です"))
	}
	if c.Polling.IntervalMillis <= 0 {
		errs = append(errs, errors.New("polling.interval_ms は正の値にしてください"))
	}
	if c.Polling.MaxAttempts <= 0 {
		errs = append(errs, errors.New("polling.max_attempts は正の値にしてください"))
	}
	return errors.Join(errs...)
}

// JobSettings はジョブ投入用の設定を domain 型に変換します。
func (c *Config) JobSettings() domain.JobSettings {
	return domain.JobSettings{
		Mode:            domain.GenerationMode(c.Job.Mode),
		Model:           c.Job.Model,
		ToolType:        c.Job.ToolType,
		EffectID:        c.Job.EffectID,
		UserID:          c.Job.UserID,
		RemoveWatermark: c.Job.RemoveWatermark,
		IsPrivate:       c.Job.IsPrivate,
	}
}

// Timeout は HTTP クライアントのタイムアウトです。
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval はステータス確認の間隔です。
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.IntervalMillis) * time.Millisecond
}

// Sample は既定値を TOML として書き出します。
func Sample() ([]byte, error) {
	return toml.Marshal(Default())
}
