package domain

import "errors"

// 各フェーズの失敗を表すセンチネルエラーです。呼び出し側は errors.Is で判定します。
var (
	ErrNotImage      = errors.New("画像ファイルを選択してください")
	ErrUpload        = errors.New("アップロードに失敗しました")
	ErrNoSourceImage = errors.New("先に画像をアップロードしてください")
	ErrSubmit        = errors.New("ジョブの投入に失敗しました")
	ErrJobFailed     = errors.New("ジョブの処理に失敗しました")
	ErrPollTimeout   = errors.New("ジョブがタイムアウトしました")
	ErrNoMedia       = errors.New("レスポンスにメディアURLがありません")
	ErrNoResult      = errors.New("ダウンロードできる結果がありません")
	ErrDownload      = errors.New("ダウンロードに失敗しました")
)
