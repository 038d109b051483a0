package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/extract"
)

var parseCmd = &cobra.Command{
	Use:   "parse <year> <number>",
	Short: "Parse one downloaded gazette issue into act trees",
	Long: `Parse runs the full pipeline over one issue: line assembly,
issue splitting, structural parsing and phrase recognition.

The issue's extraction output (written by the external text extractor
next to the downloaded PDF) must already exist. Parsed acts are written
to the output directory as JSON and recorded in the act registry.

Examples:
  gazette parse 2011 150`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		logger := newLogger()
		h, err := openHome()
		if err != nil {
			return err
		}
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		src, err := extract.Locate(h, year, number)
		if err != nil {
			return err
		}
		if src.PDFPages > 0 {
			logger.Info("issue input located",
				"pdf", src.PDFPath, "pages", src.PDFPages)
		}
		in, err := src.Load()
		if err != nil {
			return err
		}

		return processIssue(cmd.Context(), h, cm.Get(), logger, year, number, in)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
