// Package interfaces はdtm2txtコマンドで使用するインターフェースを定義します
package interfaces

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	Size() int64
	IsDir() bool
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
