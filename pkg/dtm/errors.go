package dtm

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic は先頭4バイトがDTMのシグネチャと一致しない場合のエラー
	ErrBadMagic = errors.New("dtm: bad magic value")

	// ErrStringTooLong は文字列フィールドが固定長を超えている場合のエラー
	ErrStringTooLong = errors.New("dtm: string too long")

	// ErrInvalidText は文字列がUTF-8として不正な場合のエラー
	ErrInvalidText = errors.New("dtm: invalid utf-8 text")

	// ErrInvalidHeader はテキスト形式のヘッダ(JSON)が不正な場合のエラー
	ErrInvalidHeader = errors.New("dtm: invalid header object")

	// ErrHexLength は16進文字列の長さが一致しない場合のエラー
	ErrHexLength = errors.New("dtm: invalid hex string length")

	// ErrHexCharacter は16進文字列に不正な文字が含まれる場合のエラー
	ErrHexCharacter = errors.New("dtm: invalid hex character")
)

// フレーム行の解析エラーの理由
var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidButton = errors.New("invalid button token")
	ErrInvalidAxis   = errors.New("invalid analog value")
	ErrUnknownFlag   = errors.New("unknown flag token")
)

// MagicError は読み込んだシグネチャを保持します
type MagicError struct {
	Found [4]byte
}

// Error はエラーメッセージを返します
func (e *MagicError) Error() string {
	return fmt.Sprintf("%v: % X", ErrBadMagic, e.Found[:])
}

// Unwrap は ErrBadMagic を返します
func (e *MagicError) Unwrap() error {
	return ErrBadMagic
}

// FrameError はテキスト形式のフレーム行の解析エラー
type FrameError struct {
	Line   int    // 1始まりの行番号 (0は不明)
	Token  string // 問題のトークン (トークン不足の場合は空)
	Reason error  // ErrMissingToken などの理由
}

// Error はエラーメッセージを返します
func (e *FrameError) Error() string {
	msg := "dtm: frame parse error"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %v %q", msg, e.Reason, e.Token)
	}
	return fmt.Sprintf("%s: %v", msg, e.Reason)
}

// Unwrap は理由のエラーを返します
func (e *FrameError) Unwrap() error {
	return e.Reason
}
