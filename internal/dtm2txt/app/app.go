// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/config"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/errors"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/fileutil"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/format"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/interfaces"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/models"
	"github.com/shiroemons/go-dtm2txt/pkg/dtm"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config   *config.Config
	logger   interfaces.Logger
	detector *format.Detector
	fs       interfaces.FileSystem
	stdout   io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Stdout     io.Writer
	Logger     interfaces.Logger
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var logger interfaces.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		logger = config.NewDebugLoggerTo(cfg.DebugMode, stdout)
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	return &App{
		config:   cfg,
		logger:   logger,
		detector: format.NewDetector(logger),
		fs:       fs,
		stdout:   stdout,
	}
}

// Run は変換を実行し、結果を表示します
func (a *App) Run(ctx context.Context) error {
	result, err := a.Convert(ctx)
	if err != nil {
		return err
	}

	if !result.Written {
		fmt.Fprintf(a.stdout, "%s → %s (%s, %s フレーム) ※ドライランのため書き込みません\n",
			result.InputPath, result.OutputPath, result.Direction(), humanize.Comma(int64(result.Frames)))
		return nil
	}

	fmt.Fprintf(a.stdout, "%s → %s (%s, %s フレーム, %s)\n",
		result.InputPath, result.OutputPath, result.Direction(),
		humanize.Comma(int64(result.Frames)), humanize.Bytes(uint64(result.Bytes)))
	if result.Verified {
		fmt.Fprintln(a.stdout, "検証に成功しました")
	}
	return nil
}

// Convert は入力ファイルを読み込み、もう一方の形式に変換して保存します
func (a *App) Convert(ctx context.Context) (*models.Result, error) {
	inputPath := a.config.InputPath
	if inputPath == "" {
		return nil, ErrNoInput
	}

	movie, from, err := a.load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	to := from.Opposite()
	outputPath := a.config.OutputPath
	if outputPath == "" {
		outputPath = fileutil.GenerateOutputPath(inputPath, a.config.OutputDir, to.Ext())
	}
	if fileutil.SamePath(inputPath, outputPath) {
		return nil, fmt.Errorf("%w: %s", errors.ErrSamePath, outputPath)
	}

	result := &models.Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		From:       from,
		To:         to,
		Frames:     len(movie.Frames),
	}

	data, err := format.Encode(to, movie)
	if err != nil {
		return nil, errors.NewConvertError("encode", outputPath, err)
	}
	result.Bytes = len(data)
	a.logger.Printf("%s 形式で %d バイトにエンコードしました\n", to, len(data))

	if a.config.Verify {
		if err := a.verify(ctx, movie, to, data); err != nil {
			return nil, err
		}
		result.Verified = true
	}

	if a.config.DryRun {
		return result, nil
	}

	if a.fs.FileExists(outputPath) && !a.config.Overwrite {
		return nil, fmt.Errorf("%w: %s", errors.ErrOutputExists, outputPath)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := fileutil.SaveFile(a.fs, outputPath, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	result.Written = true
	a.logger.Printf("データを %s に保存しました\n", outputPath)

	return result, nil
}

// Inspect はファイルを読み込み、ヘッダとフレーム数を返します
func (a *App) Inspect(ctx context.Context, path string) (*models.Info, error) {
	movie, f, err := a.load(ctx, path)
	if err != nil {
		return nil, err
	}

	info := &models.Info{Path: path, Format: f, Movie: movie}
	if st, err := a.fs.Stat(path); err == nil {
		info.Size = st.Size()
	}
	return info, nil
}

// load はファイルを読み込み、形式を判定してデコードします
func (a *App) load(ctx context.Context, path string) (*dtm.Movie, models.Format, error) {
	select {
	case <-ctx.Done():
		return nil, models.FormatUnknown, ctx.Err()
	default:
	}

	if !a.fs.FileExists(path) {
		return nil, models.FormatUnknown, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
	}

	data, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, models.FormatUnknown, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	a.logger.Printf("%s を読み込みました (%d バイト)\n", path, len(data))

	f := a.detector.Detect(path, data)
	if f == models.FormatUnknown {
		return nil, models.FormatUnknown, errors.NewConvertError("detect", path, errors.ErrUnknownFormat)
	}

	movie, err := format.Decode(f, data)
	if err != nil {
		return nil, models.FormatUnknown, errors.NewConvertError("decode", path, err)
	}
	a.logger.Printf("%d フレームをデコードしました\n", len(movie.Frames))

	return movie, f, nil
}

// verify はエンコード結果をデコードし直して元のムービーと比較します
func (a *App) verify(ctx context.Context, movie *dtm.Movie, f models.Format, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	decoded, err := format.Decode(f, data)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrVerifyMismatch, err)
	}

	// テキスト形式では入力数はフレーム数から決まる
	expected := *movie
	expected.SyncInputCount()
	if !expected.Equal(decoded) {
		return errors.ErrVerifyMismatch
	}
	a.logger.Printf("再デコードした結果が一致しました\n")
	return nil
}
