package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/effect-studio-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "effectgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("ファイルが無ければ既定値", func(t *testing.T) {
		cfg, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Equal(t, "https://api.chromastudio.ai", cfg.API.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.PollInterval())
		assert.Equal(t, 60, cfg.Polling.MaxAttempts)
		assert.Equal(t, 60*time.Second, cfg.Timeout())
	})

	t.Run("パス未指定でも既定値", func(t *testing.T) {
		cfg, exists, err := Load("")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Equal(t, domain.ModeVideo, cfg.JobSettings().Mode)
	})

	t.Run("TOMLの値で上書きし正規化する", func(t *testing.T) {
		path := writeConfig(t, `
[api]
base_url = "https://api.example.com/"
public_base_url = " https://cdn.example.com/// "

[job]
mode = "IMAGE"
effect_id = "zombie"
user_id = "tester"
remove_watermark = false

[polling]
interval_ms = 500
max_attempts = 10
`)
		cfg, exists, err := Load(path)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
		assert.Equal(t, "https://cdn.example.com", cfg.API.PublicBaseURL)
		assert.Equal(t, 500*time.Millisecond, cfg.PollInterval())

		s := cfg.JobSettings()
		assert.Equal(t, domain.ModeImage, s.Mode)
		assert.Equal(t, "zombie", s.EffectID)
		assert.Equal(t, "tester", s.UserID)
		assert.False(t, s.RemoveWatermark)
		assert.True(t, s.IsPrivate)
		assert.Equal(t, "video-effects", s.Model)
	})

	t.Run("未知のキーはエラー", func(t *testing.T) {
		path := writeConfig(t, "[job]\neffect = \"typo\"\n")
		_, _, err := Load(path)
		assert.ErrorContains(t, err, "設定ファイルの解析に失敗しました")
	})

	t.Run("不正な値は検証エラー", func(t *testing.T) {
		path := writeConfig(t, `
[job]
mode = "audio"
user_id = ""

[polling]
max_attempts = 0
`)
		_, _, err := Load(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "job.mode")
		assert.ErrorContains(t, err, "job.user_id は必須です")
		assert.ErrorContains(t, err, "polling.max_attempts は正の値にしてください")
	})
}

func TestSample(t *testing.T) {
	data, err := Sample()
	require.NoError(t, err)
	assert.Contains(t, string(data), "effect_id = 'halloween'")

	path := writeConfig(t, string(data))
	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestNormalizeOutputDir(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"空なら現在のディレクトリ", "  ", "."},
		{"ローカルパスはCleanする", "out//videos/", filepath.Join("out", "videos")},
		{"GCSのURIは形を保つ", "gs://bucket/results/", "gs://bucket/results"},
		{"S3のURIは形を保つ", "s3://bucket/a//b", "s3://bucket/a//b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOutputDir(tt.in))
		})
	}
}

func TestLoad_PrivateNetworksAndRemoteOutput(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://127.0.0.1:8080/"
allow_private_networks = true

[download]
output_dir = "gs://bucket/results/"
`)
	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.API.BaseURL)
	assert.True(t, cfg.API.AllowPrivateNetworks)
	assert.Equal(t, "gs://bucket/results", cfg.Download.OutputDir)
}
