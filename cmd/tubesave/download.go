package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/imbecility/tubesave/pkg/gateway"
	"github.com/imbecility/tubesave/pkg/models"
)

func newDownloadCmd() *cobra.Command {
	var (
		outputPath string
		format     string
		quality    string
	)

	cmd := &cobra.Command{
		Use:     "download [URL] [--format mp3|mp4] [--quality high|medium|low] [--output PATH]",
		Short:   "Download audio or video to a file",
		Aliases: []string{"dl"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := gateway.New(cfg)
			if err != nil {
				return err
			}

			printPending("Downloading " + args[0])
			file, err := svc.Download(cmd.Context(), models.DownloadRequest{
				URL:     args[0],
				Format:  format,
				Quality: quality,
			})
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}

			path := resolveOutputPath(outputPath, file.FileName())
			log.Debug().Str("op", "cmd/download").Str("path", path).Int("bytes", len(file.Data)).Msg("Writing file")
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess(fmt.Sprintf("%s %s (%s)", symbols["pass"], path, humanBytes(int64(len(file.Data)))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file or directory (name inferred from title if omitted)")
	cmd.Flags().StringVarP(&format, "format", "f", "mp3", "mp3|audio or mp4|video")
	cmd.Flags().StringVarP(&quality, "quality", "q", "high", "Video quality tier: high, medium or low")
	return cmd
}

// resolveOutputPath treats an existing directory as the destination folder
// for the suggested name.
func resolveOutputPath(output, suggested string) string {
	if output == "" {
		return suggested
	}
	if st, err := os.Stat(output); err == nil && st.IsDir() {
		return filepath.Join(output, suggested)
	}
	return output
}
