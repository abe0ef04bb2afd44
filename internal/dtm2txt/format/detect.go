// Package format は入力ファイルの形式判定と、形式ごとの読み書きを行います
package format

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/interfaces"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/models"
	"github.com/shiroemons/go-dtm2txt/pkg/dtm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detector は形式の判定を行います
type Detector struct {
	logger interfaces.Logger
}

// NewDetector は新しいDetectorを作成します
func NewDetector(logger interfaces.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect はファイル名と先頭のバイト列から形式を判定します。
// 拡張子を優先し、判別できない場合は内容から推測します。
func (d *Detector) Detect(path string, head []byte) models.Format {
	if f := FromExt(path); f != models.FormatUnknown {
		d.logger.Printf("拡張子から %s 形式と判定しました: %s\n", f, path)
		return f
	}

	f := Sniff(head)
	if f != models.FormatUnknown {
		d.logger.Printf("内容から %s 形式と判定しました: %s\n", f, path)
	} else {
		d.logger.Printf("形式を判定できませんでした: %s\n", path)
	}
	return f
}

// FromExt は拡張子から形式を返します。大文字小文字は区別しません。
func FromExt(path string) models.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dtm":
		return models.FormatBinary
	case ".txt":
		return models.FormatText
	default:
		return models.FormatUnknown
	}
}

// Sniff は内容の先頭から形式を推測します
func Sniff(head []byte) models.Format {
	if bytes.HasPrefix(head, []byte(dtm.Magic)) {
		return models.FormatBinary
	}
	rest := bytes.TrimLeft(bytes.TrimPrefix(head, utf8BOM), " \t\r\n")
	if len(rest) > 0 && rest[0] == '{' {
		return models.FormatText
	}
	return models.FormatUnknown
}
