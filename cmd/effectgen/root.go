package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/spf13/cobra"

	"github.com/shouni/effect-studio-kit/pkg/adapters"
	"github.com/shouni/effect-studio-kit/pkg/config"
	"github.com/shouni/effect-studio-kit/pkg/generator"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if path != "" && !exists {
			slog.Warn("設定ファイルが見つからないため既定値を使います", "path", path)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if c.verboseFlag != nil && *c.verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// outputDir は --out の指定があればそれを、なければ設定の保存先を返します。
func (c *commandContext) outputDir(flag string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		return config.NormalizeOutputDir(flag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Download.OutputDir, nil
}

// newController は設定から StudioClient と端末ビューを組み立てて Controller を返します。
// API 呼び出しはすべて同じ httpkit クライアントを通り、SSRF の扱いも1つの設定で決まります。
func (c *commandContext) newController(out io.Writer, store *storage, outputDir string) (*generator.Controller, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	allowPrivate := cfg.API.AllowPrivateNetworks
	httpClient := httpkit.New(cfg.Timeout(), httpkit.WithSkipNetworkValidation(allowPrivate))

	api, err := adapters.NewStudioClient(
		httpClient,
		adapters.Endpoints{
			APIBaseURL:    cfg.API.BaseURL,
			PublicBaseURL: cfg.API.PublicBaseURL,
		},
		adapters.WithAllowPrivateNetworks(allowPrivate),
	)
	if err != nil {
		return nil, fmt.Errorf("APIクライアントの初期化に失敗しました: %w", err)
	}

	view := newTerminalView(out, store.writer, outputDir)
	return generator.NewController(api, view, cfg.JobSettings(),
		generator.WithPollInterval(cfg.PollInterval()),
		generator.WithMaxPolls(cfg.Polling.MaxAttempts),
	)
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	ctx := &commandContext{configFlag: &configFlag, verboseFlag: &verboseFlag}

	rootCmd := &cobra.Command{
		Use:           "effectgen",
		Short:         "画像をアップロードしてリモートの動画/画像エフェクトで生成します",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx.setupLogging(os.Stderr)
			if cmd.Annotations["skipConfigLoad"] == "true" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "設定ファイルのパス (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "デバッグログを出力する")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newUploadCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
