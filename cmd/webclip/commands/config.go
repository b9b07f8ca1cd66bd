package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkit/webclip/internal/output"
	"github.com/clipkit/webclip/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Config prints the configuration webclip would use, after merging
defaults, the config file, environment variables, and flags.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("format", "text", "output format: text, json, yaml")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	switch output.Format(formatStr) {
	case output.FormatText, "":
		printConfigText(cfg)
		return nil
	default:
		writer, err := output.NewWriter(os.Stdout, output.Format(formatStr))
		if err != nil {
			logError("%v", err)
			return err
		}
		defer func() { _ = writer.Close() }()
		return writer.Write(configView{
			ClipsDirectory:   cfg.ClipsDirectory,
			CreateSubdirs:    cfg.CreateSubdirs,
			IncludeTitle:     cfg.IncludeTitle,
			IncludeTimestamp: cfg.IncludeTimestamp,
			TimestampFormat:  cfg.TimestampFormat,
			ConfigFile:       viper.ConfigFileUsed(),
		})
	}
}

func printConfigText(cfg config.Config) {
	fmt.Printf("clips_directory:   %s\n", cfg.ClipsDirectory)
	fmt.Printf("create_subdirs:    %t\n", cfg.CreateSubdirs)
	fmt.Printf("include_title:     %t\n", cfg.IncludeTitle)
	fmt.Printf("include_timestamp: %t\n", cfg.IncludeTimestamp)
	fmt.Printf("timestamp_format:  %s\n", cfg.TimestampFormat)
	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Printf("config_file:       %s\n", file)
	}
}

type configView struct {
	ClipsDirectory   string `json:"clips_directory" yaml:"clips_directory"`
	CreateSubdirs    bool   `json:"create_subdirs" yaml:"create_subdirs"`
	IncludeTitle     bool   `json:"include_title" yaml:"include_title"`
	IncludeTimestamp bool   `json:"include_timestamp" yaml:"include_timestamp"`
	TimestampFormat  string `json:"timestamp_format" yaml:"timestamp_format"`
	ConfigFile       string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}
