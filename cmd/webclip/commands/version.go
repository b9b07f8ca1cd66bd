package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipkit/webclip/internal/output"
	"github.com/clipkit/webclip/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().String("format", "text", "output format: text, json, yaml")
	versionCmd.Flags().Bool("short", false, "print only the version number")
}

func runVersion(cmd *cobra.Command, args []string) error {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(version.String())
		return nil
	}

	formatStr, _ := cmd.Flags().GetString("format")
	switch output.Format(formatStr) {
	case output.FormatText, "":
		fmt.Println(version.Full())
		return nil
	default:
		writer, err := output.NewWriter(os.Stdout, output.Format(formatStr))
		if err != nil {
			logError("%v", err)
			return err
		}
		defer func() { _ = writer.Close() }()
		return writer.Write(version.Get())
	}
}
