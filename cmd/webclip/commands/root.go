// Package commands implements the CLI commands for webclip.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkit/webclip/internal/version"
	"github.com/clipkit/webclip/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:     "webclip",
	Version: version.String(),
	Short:   "Save clipboard content as markdown clips",
	Long: `Webclip turns whatever is on your clipboard into a markdown record,
filed under the page it was copied from.

Copy some text, an image, or rich HTML in your browser, then run webclip.
It resolves the active browser tab for attribution, converts HTML to
markdown, downloads embedded images, and appends the result to a clip
file derived from the page URL.

Examples:
  # Clip whatever is on the clipboard
  webclip clip

  # Clip with tags
  webclip clip -t "go,concurrency"

  # Clip into a custom directory, flat layout
  webclip clip --clips-dir ~/notes/clips --no-subdirs

  # Machine-readable result
  webclip clip --format json`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.webclip.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().StringP("clips-dir", "d", "", "directory for clip files")
	rootCmd.PersistentFlags().Bool("no-subdirs", false, "store all clips flat instead of per-host subdirectories")
	rootCmd.PersistentFlags().Bool("no-timestamp", false, "omit the capture timestamp from records")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".webclip")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("WEBCLIP")
	viper.AutomaticEnv()

	// WEBCLIP_DIR is the documented shorthand for the clips directory
	_ = viper.BindEnv("clips_directory", "WEBCLIP_DIR", "WEBCLIP_CLIPS_DIRECTORY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig resolves the effective configuration, applying the persistent
// directory and layout flags on top of file and environment values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Root().PersistentFlags()
	if dir, _ := flags.GetString("clips-dir"); dir != "" {
		cfg.ClipsDirectory = dir
	}
	if noSubdirs, _ := flags.GetBool("no-subdirs"); noSubdirs {
		cfg.CreateSubdirs = false
	}
	if noTimestamp, _ := flags.GetBool("no-timestamp"); noTimestamp {
		cfg.IncludeTimestamp = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
