package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkit/webclip/internal/logger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the clips directory structure",
	Long: `Init creates the configured clips directory and its images
subdirectory so the first clip does not have to.

Running it against an existing directory is harmless.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg, err := loadConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	if err := cfg.EnsureDirectory(); err != nil {
		logError("%v", err)
		return err
	}
	if err := os.MkdirAll(cfg.ImagesDirectory(), 0o755); err != nil {
		logError("creating images directory: %v", err)
		return err
	}

	logInfo("Initialized %s", cfg.ClipsDirectory)
	printConfigText(cfg)
	return nil
}
