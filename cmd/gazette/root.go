package main

import (
	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/version"
)

var (
	cfgFile string
	homeDir string
)

var rootCmd = &cobra.Command{
	Use:   "gazette",
	Short: "Parse Magyar Közlöny issues into structured legal act trees",
	Long: `Gazette turns official gazette (Magyar Közlöny) issue PDFs into
structured act trees with resolved internal references.

The pipeline includes:
  - Positioned text line assembly from extractor output
  - Issue splitting into per-act bodies
  - Structural parsing (articles, paragraphs, points, subpoints)
  - Citation and amendment phrase recognition`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.gazette/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "gazette home directory (default: ~/.gazette)",
	)

	rootCmd.AddCommand(versionCmd)
}
