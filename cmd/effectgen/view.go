package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// terminalView は generator.View を端末出力と remoteio への保存で実装します。
type terminalView struct {
	out       io.Writer
	writer    remoteio.OutputWriter
	outputDir string
	lastState domain.DisplayState
	lastSaved string
}

func newTerminalView(out io.Writer, writer remoteio.OutputWriter, outputDir string) *terminalView {
	return &terminalView{out: out, writer: writer, outputDir: outputDir, lastState: domain.StateIdle}
}

func (v *terminalView) SetState(state domain.DisplayState, message string) {
	v.lastState = state
	if message == "" {
		return
	}
	fmt.Fprintf(v.out, "[%s] %s\n", state, message)
}

func (v *terminalView) ShowPreview(url string) {
	fmt.Fprintf(v.out, "ソース画像: %s\n", url)
}

func (v *terminalView) ShowResult(url string, kind domain.MediaKind) {
	fmt.Fprintf(v.out, "生成結果 (%s): %s\n", kind, url)
}

func (v *terminalView) ShowError(err error) {
	fmt.Fprintf(v.out, "エラー: %v\n", err)
}

func (v *terminalView) SetDownloadBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.out, "ダウンロード中...")
	}
}

func (v *terminalView) OfferDownload(ctx context.Context, file *domain.DownloadedFile) error {
	target := outputPath(v.outputDir, file.Name)
	if err := v.writer.Write(ctx, target, bytes.NewReader(file.Data), file.ContentType); err != nil {
		return fmt.Errorf("結果の保存に失敗しました (%s): %w", target, err)
	}
	v.lastSaved = target
	fmt.Fprintf(v.out, "保存しました: %s (%d バイト, %s 経由)\n", target, len(file.Data), file.Strategy)
	return nil
}

func (v *terminalView) ShowManualDownload(url string) {
	fmt.Fprintf(v.out, "ダウンロードに失敗しました。結果を開いて手動で保存してください: %s\n", url)
}

func (v *terminalView) Clear() {
	v.lastSaved = ""
	v.lastState = domain.StateIdle
}
