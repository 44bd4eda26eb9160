package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/effect-studio-kit/pkg/config"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var contentType string
	var outFlag string
	var skipDownload bool

	cmd := &cobra.Command{
		Use:   "run <image-file>",
		Short: "画像をアップロードし、エフェクトを生成して結果を保存します",
		Long:  "image-file と --out にはローカルパスのほか gs:// や s3:// の URI も指定できます。",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, err := ctx.outputDir(outFlag)
			if err != nil {
				return err
			}
			uris := []string{args[0]}
			if !skipDownload {
				uris = append(uris, outputDir)
			}

			store, err := openStorage(cmd.Context(), uris...)
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := readSourceFile(cmd.Context(), store.reader, args[0], contentType)
			if err != nil {
				return err
			}

			ctrl, err := ctx.newController(cmd.OutOrStdout(), store, outputDir)
			if err != nil {
				return err
			}

			if _, err := ctrl.Upload(cmd.Context(), file); err != nil {
				return err
			}
			result, err := ctrl.Generate(cmd.Context())
			if err != nil {
				return err
			}
			if skipDownload {
				fmt.Fprintln(cmd.OutOrStdout(), result.MediaURL)
				return nil
			}
			_, err = ctrl.Download(cmd.Context(), result.MediaURL)
			return err
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "画像の申告 MIME タイプを上書きする")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "保存先ディレクトリ (ローカル、gs://、s3://)")
	cmd.Flags().BoolVar(&skipDownload, "no-download", false, "保存せずに結果URLだけを表示する")
	return cmd
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <image-file>",
		Short: "画像をストレージに配置して公開URLを表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := readSourceFile(cmd.Context(), store.reader, args[0], contentType)
			if err != nil {
				return err
			}

			ctrl, err := ctx.newController(cmd.ErrOrStderr(), store, "")
			if err != nil {
				return err
			}

			url, err := ctrl.Upload(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "画像の申告 MIME タイプを上書きする")
	return cmd
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <image-url>",
		Short: "公開済みの画像URLでジョブを投入し、結果URLを表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			ctrl, err := ctx.newController(cmd.ErrOrStderr(), store, "")
			if err != nil {
				return err
			}

			ctrl.UseSourceURL(args[0])
			result, err := ctrl.Generate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.MediaURL)
			return nil
		},
	}
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "download <media-url>",
		Short: "生成結果を保存先へダウンロードします",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, err := ctx.outputDir(outFlag)
			if err != nil {
				return err
			}

			store, err := openStorage(cmd.Context(), outputDir)
			if err != nil {
				return err
			}
			defer store.Close()

			ctrl, err := ctx.newController(cmd.OutOrStdout(), store, outputDir)
			if err != nil {
				return err
			}
			_, err = ctrl.Download(cmd.Context(), args[0])
			return err
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "保存先ディレクトリ (ローカル、gs://、s3://)")
	return cmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "設定ファイル関連のユーティリティ",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:         "sample",
		Short:       "既定値を埋めたサンプル設定を表示します",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Sample()
			if err != nil {
				return fmt.Errorf("サンプル設定の生成に失敗しました: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return configCmd
}
