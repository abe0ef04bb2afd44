package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/app"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/config"
)

// commandOptions はサブコマンドで共有するフラグの値です
type commandOptions struct {
	configPath string
	debug      bool
}

// loadConfig は設定ファイルとフラグから設定を組み立てます
func (o *commandOptions) loadConfig(cmd *cobra.Command, cfg *config.Config) error {
	cfg.ConfigPath = o.configPath
	cfg.DebugMode = o.debug
	if o.configPath == "" {
		return nil
	}

	file, err := config.LoadFile(o.configPath)
	if err != nil {
		return err
	}
	cfg.Apply(file, func(name string) bool {
		return cmd.Flags().Changed(name)
	})
	return nil
}

func newRootCommand() *cobra.Command {
	opts := &commandOptions{}
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "dtm2txt [flags] <input> [output]",
		Short: "Dolphin のムービー(.dtm)とテキスト形式を相互に変換します",
		Long: `Dolphin のムービー(.dtm)とテキスト形式を相互に変換します。

入力が .dtm ならテキスト(.txt)に、.txt ならバイナリ(.dtm)に変換します。
拡張子で判別できない場合はファイルの内容から判定します。`,
		Version:       config.Version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadConfig(cmd, cfg); err != nil {
				return err
			}
			cfg.InputPath = args[0]
			if len(args) > 1 {
				cfg.OutputPath = args[1]
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.NewWithOptions(cfg, app.Options{Stdout: cmd.OutOrStdout()}).Run(ctx)
		},
	}
	rootCmd.SetVersionTemplate("dtm2txt version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "設定ファイル(TOML)のパス")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "デバッグ情報を表示")

	rootCmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "出力先ディレクトリ")
	rootCmd.Flags().BoolVarP(&cfg.Overwrite, "force", "f", false, "出力先が存在する場合に上書きする")
	rootCmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "変換のみ行い、ファイルを書き込まない")
	rootCmd.Flags().BoolVar(&cfg.Verify, "verify", false, "変換結果を読み直して内容が一致するか検証する")

	rootCmd.AddCommand(newInfoCommand(opts))

	return rootCmd
}
