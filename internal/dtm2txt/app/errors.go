package app

import "errors"

var (
	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrNoInput は入力ファイルが指定されていない場合のエラー
	ErrNoInput = errors.New("入力ファイルが指定されていません")
)
