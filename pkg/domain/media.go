package domain

// MediaKind は結果をどちらの要素で描画するかを表します。
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// DisplayState は View に反映される排他的な表示モードです。
// セッション状態から再計算できる派生値であり、正となる状態ではありません。
type DisplayState string

const (
	StateIdle       DisplayState = "idle"
	StateUploading  DisplayState = "uploading"
	StateReady      DisplayState = "ready"
	StateProcessing DisplayState = "processing"
	StateComplete   DisplayState = "complete"
	StateError      DisplayState = "error"
)

// SourceFile はユーザーが選択したアップロード元ファイルです。
type SourceFile struct {
	Name        string
	ContentType string // 申告された MIME タイプ。検証はこの値のみで行う
	Data        []byte
}

// GenerationResult は1回の生成シーケンスの成果です。
type GenerationResult struct {
	JobID    string
	MediaURL string
	Kind     MediaKind
}

// MediaPayload は取得したメディアのバイト列と申告された Content-Type です。
type MediaPayload struct {
	Data        []byte
	ContentType string
}

// DownloadStrategy は結果の取得に成功した経路です。
type DownloadStrategy string

const (
	DownloadViaProxy  DownloadStrategy = "proxy"
	DownloadViaDirect DownloadStrategy = "direct"
)

// DownloadedFile はユーザーに保存を提示するローカルファイルです。
type DownloadedFile struct {
	Name        string
	ContentType string
	Data        []byte
	SourceURL   string
	Strategy    DownloadStrategy
}
