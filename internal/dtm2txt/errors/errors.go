// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrUnknownFormat は入力ファイルの形式を判別できない場合のエラー
	ErrUnknownFormat = errors.New("ファイルの形式を判別できません")

	// ErrOutputExists は出力先がすでに存在する場合のエラー
	ErrOutputExists = errors.New("出力先のファイルがすでに存在します。上書きするには --force を指定してください")

	// ErrSamePath は入力と出力が同じパスの場合のエラー
	ErrSamePath = errors.New("入力と出力に同じファイルは指定できません")

	// ErrVerifyMismatch は書き込んだ内容を読み直した結果が一致しない場合のエラー
	ErrVerifyMismatch = errors.New("変換結果の検証に失敗しました")
)

// ConvertError は変換処理のエラー
type ConvertError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ConvertError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError は新しいConvertErrorを作成します
func NewConvertError(op, path string, err error) *ConvertError {
	return &ConvertError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
