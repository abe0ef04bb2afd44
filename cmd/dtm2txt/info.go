package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/app"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/config"
	"github.com/shiroemons/go-dtm2txt/internal/dtm2txt/models"
)

func newInfoCommand(opts *commandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "ムービーのヘッダとフレーム数を表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := opts.loadConfig(cmd, cfg); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			info, err := app.NewWithOptions(cfg, app.Options{Stdout: out}).Inspect(ctx, args[0])
			if err != nil {
				return err
			}
			printInfo(out, info)
			return nil
		},
	}
}

func printInfo(w io.Writer, info *models.Info) {
	fmt.Fprintf(w, "ファイル:   %s\n", info.Path)
	fmt.Fprintf(w, "形式:       %s\n", info.Format)
	fmt.Fprintf(w, "サイズ:     %s\n", humanize.Bytes(uint64(info.Size)))
	fmt.Fprintf(w, "フレーム数: %s\n", humanize.Comma(int64(len(info.Movie.Frames))))

	fields := app.HeaderFields(info.Movie.Header)
	rows := make([][2]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, [2]string{f.Name, f.Value})
	}
	fmt.Fprintln(w, renderHeaderTable(w, rows))
}
