package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkit/webclip/internal/logger"
	"github.com/clipkit/webclip/internal/output"
	"github.com/clipkit/webclip/pkg/clipper"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Save the current clipboard content as a markdown clip",
	Long: `Clip captures the clipboard, attributes it to the active browser tab,
and appends a markdown record to the clip file for that page.

Rich HTML is converted to markdown with embedded images downloaded next
to the clips. Plain text and copied images are saved as-is. Repeated
clips of the same page accumulate in the same file.

Examples:
  # Plain clip
  webclip clip

  # Tagged clip
  webclip clip -t "reading,go"

  # JSON result for scripting
  webclip clip --format json`,
	RunE: runClip,
}

func init() {
	rootCmd.AddCommand(clipCmd)

	flags := clipCmd.Flags()
	flags.StringP("tags", "t", "", "comma-separated tags for this clip")
	flags.String("format", "text", "result format: text, json, yaml")
}

func runClip(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Debug("configuration resolved",
		"clips_dir", cfg.ClipsDirectory,
		"subdirs", cfg.CreateSubdirs,
		"timestamp", cfg.IncludeTimestamp)

	tags, _ := cmd.Flags().GetString("tags")

	result, err := clipper.New(cfg).Clip(ctx, tags)
	if err != nil {
		if errors.Is(err, clipper.ErrNoContent) {
			logError("%v", err)
			return err
		}
		logger.Error("clip failed", "error", err)
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	switch output.Format(formatStr) {
	case output.FormatText, "":
		logInfo("Clipped %s from %s", humanize.Bytes(uint64(result.ContentLength)), result.URL)
		if result.Title != "" {
			logInfo("Title: %s", result.Title)
		}
		if result.ImageCount > 0 {
			logInfo("Saved %d image(s)", result.ImageCount)
		}
		fmt.Println(result.FilePath)
		return nil
	default:
		writer, err := output.NewWriter(os.Stdout, output.Format(formatStr))
		if err != nil {
			logError("%v", err)
			return err
		}
		defer func() { _ = writer.Close() }()
		return writer.Write(result)
	}
}
