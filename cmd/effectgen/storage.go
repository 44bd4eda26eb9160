package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// storage はソース画像の読み込みと結果の保存に使う入出力です。
type storage struct {
	reader  remoteio.InputReader
	writer  remoteio.OutputWriter
	factory remoteio.IOFactory
}

// openStorage は uris のスキームに応じて GCS または S3 のクライアントを用意します。
// ローカルパスだけなら認証情報なしで開きます。
func openStorage(ctx context.Context, uris ...string) (*storage, error) {
	var useGCS, useS3 bool
	for _, uri := range uris {
		useGCS = useGCS || remoteio.IsGCSURI(uri)
		useS3 = useS3 || remoteio.IsS3URI(uri)
	}

	var newFactory func(context.Context) (remoteio.IOFactory, error)
	switch {
	case useGCS && useS3:
		return nil, fmt.Errorf("gs:// と s3:// を同じコマンドで併用することはできません")
	case useGCS:
		newFactory = gcsfactory.New
	case useS3:
		newFactory = s3factory.New
	default:
		return &storage{
			reader: remoteio.NewUniversalInputReader(nil, nil),
			writer: remoteio.NewUniversalIOWriter(nil, nil),
		}, nil
	}

	factory, err := newFactory(ctx)
	if err != nil {
		return nil, err
	}
	reader, err := factory.InputReader()
	if err != nil {
		factory.Close()
		return nil, err
	}
	writer, err := factory.OutputWriter()
	if err != nil {
		factory.Close()
		return nil, err
	}
	return &storage{reader: reader, writer: writer, factory: factory}, nil
}

func (s *storage) Close() error {
	if s.factory == nil {
		return nil
	}
	return s.factory.Close()
}

// readSourceFile はローカルパスまたは gs:// / s3:// の URI から画像を読み込み、申告 MIME タイプを決めます。
// 拡張子から分かればそれを、分からなければ先頭バイトから推定します。
func readSourceFile(ctx context.Context, reader remoteio.InputReader, path, contentType string) (domain.SourceFile, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return domain.SourceFile{}, fmt.Errorf("ソース画像を開けませんでした (%s): %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.SourceFile{}, fmt.Errorf("ソース画像の読み込みに失敗しました (%s): %w", path, err)
	}

	ct := strings.TrimSpace(contentType)
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	}
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	return domain.SourceFile{
		Name:        filepath.Base(path),
		ContentType: ct,
		Data:        data,
	}, nil
}

// outputPath は保存先ディレクトリとファイル名を結合します。リモート URI は / で繋ぎます。
func outputPath(dir, name string) string {
	if remoteio.IsRemoteURI(dir) {
		return strings.TrimRight(dir, "/") + "/" + name
	}
	return filepath.Join(dir, name)
}
