// Package models はdtm2txtコマンドで使用するデータモデルを定義します
package models

import "github.com/shiroemons/go-dtm2txt/pkg/dtm"

// Format はムービーの表現形式です
type Format int

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatText
)

// String は形式の短い名前を返します
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "dtm"
	case FormatText:
		return "txt"
	default:
		return "unknown"
	}
}

// Ext は形式に対応する拡張子を返します
func (f Format) Ext() string {
	switch f {
	case FormatBinary:
		return ".dtm"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}

// Opposite は変換先の形式を返します
func (f Format) Opposite() Format {
	switch f {
	case FormatBinary:
		return FormatText
	case FormatText:
		return FormatBinary
	default:
		return FormatUnknown
	}
}

// Result は1回の変換の結果を表します
type Result struct {
	InputPath  string
	OutputPath string
	From       Format
	To         Format
	Frames     int
	Bytes      int
	Written    bool // dry-run のときは false
	Verified   bool
}

// Direction は "dtm → txt" のような変換方向の表示です
func (r *Result) Direction() string {
	return r.From.String() + " → " + r.To.String()
}

// Info は info サブコマンドで表示する内容です
type Info struct {
	Path   string
	Format Format
	Size   int64
	Movie  *dtm.Movie
}
