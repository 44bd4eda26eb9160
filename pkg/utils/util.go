package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// IDAlphabet はファイル名に使うID文字集合です。URLエンコード不要な英数字のみ。
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// DefaultIDLength はアップロードファイル名のID長です。
	DefaultIDLength = 21
	// ShortIDLength はダウンロード時の保存ファイル名に使うID長です。
	ShortIDLength = 8
)

// NewID は暗号学的乱数から size 文字のIDを生成します。
func NewID(size int) (string, error) {
	return gonanoid.Generate(IDAlphabet, size)
}
