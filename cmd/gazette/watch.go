package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/textline"
)

// spoolFileRe matches extraction files dropped into the spool
// directory, e.g. "mk_2011_150.lines.json".
var spoolFileRe = regexp.MustCompile(`^mk_([0-9]{4})_([0-9]{1,3})\.lines\.json$`)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the spool directory and parse issues as they arrive",
	Long: `Watch monitors the spool directory for extraction files named
mk_<year>_<number>.lines.json. Each completed file is parsed through
the full pipeline and then moved into the issues cache.

The external extractor should write into a temporary name and rename
into place, so only complete files are picked up.

Examples:
  gazette watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		h, err := openHome()
		if err != nil {
			return err
		}
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Add(h.SpoolPath()); err != nil {
			return err
		}
		logger.Info("watching spool directory", "path", h.SpoolPath())

		process := func(path string) {
			m := spoolFileRe.FindStringSubmatch(filepath.Base(path))
			if m == nil {
				return
			}
			year, _ := strconv.Atoi(m[1])
			number, _ := strconv.Atoi(m[2])

			in, err := textline.Load(path)
			if err != nil {
				logger.Error("invalid extraction file", "path", path, "error", err)
				return
			}
			if err := processIssue(ctx, h, cm.Get(), logger, year, number, in); err != nil {
				logger.Error("issue processing failed", "path", path, "error", err)
				return
			}
			// Move the processed file into the issues cache so a
			// later parse run can reuse it.
			if err := os.Rename(path, h.IssueLinesPath(year, number)); err != nil {
				logger.Warn("could not move processed file", "path", path, "error", err)
			}
		}

		// Pick up anything already waiting in the spool.
		entries, err := os.ReadDir(h.SpoolPath())
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.IsDir() {
				process(filepath.Join(h.SpoolPath(), e.Name()))
			}
		}

		for {
			select {
			case <-ctx.Done():
				logger.Info("watch stopped")
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
					process(ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("watch error", "error", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
