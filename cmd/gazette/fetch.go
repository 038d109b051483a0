package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <year> <number>",
	Short: "Download one gazette issue PDF",
	Long: `Fetch downloads an issue PDF from the configured URL template
into the home issues directory. Already downloaded issues are skipped.

Examples:
  gazette fetch 2011 150`,
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

		f := fetch.New(h, cm.Get().Download, logger)
		path, err := f.Issue(cmd.Context(), year, number)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
