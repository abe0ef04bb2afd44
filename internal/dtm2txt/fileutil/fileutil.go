// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/interfaces"
)

// GenerateOutputPath は入力ファイル名の拡張子を ext に置き換えた出力パスを生成します。
// outputDir が空の場合は入力ファイルと同じディレクトリに出力します。
func GenerateOutputPath(inputPath, outputDir, ext string) string {
	baseName := filepath.Base(inputPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName)) + ext

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), baseName)
	}
	return filepath.Join(outputDir, baseName)
}

// SamePath は2つのパスが同じファイルを指すかを返します
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// SaveFile は出力先ディレクトリを作成してからファイルに保存します
func SaveFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}

	return nil
}
