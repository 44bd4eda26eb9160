package generator

import (
	"context"

	"github.com/shouni/effect-studio-kit/pkg/domain"
)

// Uploader は署名付きURLを使ったオブジェクトストレージへのステージングを担当します。
type Uploader interface {
	RequestUploadURL(ctx context.Context, fileName string) (string, error)
	PutObject(ctx context.Context, signedURL, contentType string, data []byte) error
	PublicURL(fileName string) string
}

// JobClient は生成ジョブの投入と状態確認を担当します。
type JobClient interface {
	SubmitJob(ctx context.Context, imageURL string, settings domain.JobSettings) (*domain.Job, error)
	FetchJobStatus(ctx context.Context, mode domain.GenerationMode, userID, jobID string) (*domain.JobStatusResponse, error)
}

// MediaFetcher は結果メディアのバイト列取得を担当します。
type MediaFetcher interface {
	// FetchViaProxy は API のダウンロードプロキシ経由で取得します。
	FetchViaProxy(ctx context.Context, mediaURL string) (*domain.MediaPayload, error)
	// FetchDirect は結果URLから直接取得します。
	FetchDirect(ctx context.Context, mediaURL string) (*domain.MediaPayload, error)
}

// StudioAPI は Controller が利用するリモート API 全体です。adapters.StudioClient が満たします。
type StudioAPI interface {
	Uploader
	JobClient
	MediaFetcher
}

// View は Controller が必要とする表示状態の遷移だけを公開する狭いインターフェースです。
type View interface {
	// SetState は表示モードと状態テキスト（ボタン文言など）を切り替えます。
	SetState(state domain.DisplayState, message string)
	ShowPreview(url string)
	// ShowResult は結果を描画し、ダウンロード操作を有効にします。
	ShowResult(url string, kind domain.MediaKind)
	ShowError(err error)
	SetDownloadBusy(busy bool)
	// OfferDownload は取得したバイト列を保存先（ローカル、gs://、s3://）へ書き出してユーザーに渡します。
	OfferDownload(ctx context.Context, file *domain.DownloadedFile) error
	// ShowManualDownload は自動取得がすべて失敗した場合に手動保存を案内します。
	ShowManualDownload(url string)
	Clear()
}
