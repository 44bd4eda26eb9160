package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JobStatus はリモート生成ジョブの状態文字列です。
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
	JobError      JobStatus = "error"
)

// IsSuccess は成功で終端した状態かどうかを返します。
func (s JobStatus) IsSuccess() bool {
	return s == JobCompleted
}

// IsFailure はサーバー側で失敗が報告された状態かどうかを返します。
func (s JobStatus) IsFailure() bool {
	return s == JobFailed || s == JobError
}

// IsTerminal は以降状態が変化しない値かどうかを返します。
// 未知の値はすべて処理中として扱います。
func (s JobStatus) IsTerminal() bool {
	return s.IsSuccess() || s.IsFailure()
}

// GenerationMode は投入先エンドポイント（画像生成か動画生成か）を選びます。
type GenerationMode string

const (
	ModeVideo GenerationMode = "video"
	ModeImage GenerationMode = "image"
)

// Path はジョブ投入・ステータス取得に使うパス要素を返します。
func (m GenerationMode) Path() string {
	if m == ModeImage {
		return "image-gen"
	}
	return "video-gen"
}

// JobSettings はジョブ投入リクエストに埋め込む固定パラメータです。
type JobSettings struct {
	Mode            GenerationMode
	Model           string
	ToolType        string // 画像モードのみ送信
	EffectID        string
	UserID          string // 認証の代わりに使う合成ユーザーID
	RemoveWatermark bool
	IsPrivate       bool
}

// Job はジョブ投入 API のレスポンスです。
type Job struct {
	ID     string    `json:"jobId"`
	Status JobStatus `json:"status"`
}

// JobStatusResponse はステータス API のレスポンス全体です。
type JobStatusResponse struct {
	Status JobStatus    `json:"status"`
	Result JobResult    `json:"result,omitempty"`
	Error  ErrorMessage `json:"error,omitempty"`
}

// ResultItem は生成結果の1要素です。メディア参照は3つのフィールドのいずれかに入ります。
type ResultItem struct {
	MediaURL string `json:"mediaUrl,omitempty"`
	Video    string `json:"video,omitempty"`
	Image    string `json:"image,omitempty"`
}

// URL は mediaUrl → video → image の優先順でメディア参照を返します。
func (r ResultItem) URL() string {
	switch {
	case r.MediaURL != "":
		return r.MediaURL
	case r.Video != "":
		return r.Video
	default:
		return r.Image
	}
}

// JobResult は単一オブジェクトと配列のどちらで返ってきても順序付きの一覧として保持します。
type JobResult []ResultItem

// UnmarshalJSON implements json.Unmarshaler.
func (r *JobResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = nil
		return nil
	}

	if trimmed[0] == '[' {
		var items []ResultItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("result配列の解析に失敗しました: %w", err)
		}
		*r = items
		return nil
	}

	var item ResultItem
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return fmt.Errorf("resultオブジェクトの解析に失敗しました: %w", err)
	}
	*r = JobResult{item}
	return nil
}

// First は先頭要素を返します。空なら false です。
func (r JobResult) First() (ResultItem, bool) {
	if len(r) == 0 {
		return ResultItem{}, false
	}
	return r[0], true
}

// MediaURL は先頭要素のメディア参照を返します。見つからない場合は ErrNoMedia です。
func (r JobResult) MediaURL() (string, error) {
	item, ok := r.First()
	if !ok || item.URL() == "" {
		return "", ErrNoMedia
	}
	return item.URL(), nil
}

// ErrorMessage はサーバーが返す error フィールドです。
// 文字列のほか {"message": "..."} 形式のオブジェクトも受け付けます。
type ErrorMessage string

// UnmarshalJSON implements json.Unmarshaler.
func (m *ErrorMessage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*m = ErrorMessage(s)
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil && obj.Message != "" {
		*m = ErrorMessage(obj.Message)
		return nil
	}

	*m = ErrorMessage(strings.TrimSpace(string(trimmed)))
	return nil
}
