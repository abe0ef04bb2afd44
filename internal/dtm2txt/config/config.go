// Package config はdtm2txtコマンドの設定管理を行います
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const Version = "0.1.0"

var (
	// ErrReadConfig は設定ファイルの読み込みに失敗した場合のエラー
	ErrReadConfig = errors.New("設定ファイルの読み込みに失敗しました")

	// ErrParseConfig は設定ファイルの解析に失敗した場合のエラー
	ErrParseConfig = errors.New("設定ファイルの解析に失敗しました")
)

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath  string
	OutputPath string
	OutputDir  string
	ConfigPath string
	Overwrite  bool
	DryRun     bool
	Verify     bool
	DebugMode  bool
}

// File は設定ファイル(TOML)の内容です。
// 値が設定されていない項目はコマンドラインの既定値のままになります。
type File struct {
	OutputDir *string `toml:"output_dir"`
	Overwrite *bool   `toml:"overwrite"`
	Debug     *bool   `toml:"debug"`
	Verify    *bool   `toml:"verify"`
}

// Default は既定値の設定を返します
func Default() *Config {
	return &Config{}
}

// LoadFile は設定ファイルを読み込みます
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	return ParseFile(data)
}

// ParseFile はTOMLを解析します。未知のキーはエラーです。
func ParseFile(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	return &f, nil
}

// Apply は設定ファイルの値を反映します。
// changed が true を返す項目はコマンドラインで指定されたものとして上書きしません。
func (c *Config) Apply(f *File, changed func(flag string) bool) {
	if f == nil {
		return
	}
	if f.OutputDir != nil && !changed("output-dir") {
		c.OutputDir = *f.OutputDir
	}
	if f.Overwrite != nil && !changed("force") {
		c.Overwrite = *f.Overwrite
	}
	if f.Debug != nil && !changed("debug") {
		c.DebugMode = *f.Debug
	}
	if f.Verify != nil && !changed("verify") {
		c.Verify = *f.Verify
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	out     io.Writer
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerTo(enabled, os.Stdout)
}

// NewDebugLoggerTo は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerTo(enabled bool, out io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: out}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.out, format, a...)
	}
}
