package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the gazette home directory.
	DefaultDirName = ".gazette"

	// IssuesDirName is the subdirectory for downloaded gazette issue PDFs.
	IssuesDirName = "issues"

	// OutputDirName is the subdirectory for parsed act output.
	OutputDirName = "output"

	// SpoolDirName is the subdirectory watched by `gazette watch`.
	SpoolDirName = "spool"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// RegistryFileName is the issue/act lookup database file name.
	RegistryFileName = "registry.db"
)

// Dir represents the gazette home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.gazette).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// IssuesPath returns the directory holding downloaded issue PDFs.
func (d *Dir) IssuesPath() string {
	return filepath.Join(d.path, IssuesDirName)
}

// OutputPath returns the directory holding parsed act JSON.
func (d *Dir) OutputPath() string {
	return filepath.Join(d.path, OutputDirName)
}

// SpoolPath returns the directory watched for new extraction files.
func (d *Dir) SpoolPath() string {
	return filepath.Join(d.path, SpoolDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// RegistryPath returns the path to the issue/act lookup database.
func (d *Dir) RegistryPath() string {
	return filepath.Join(d.path, RegistryFileName)
}

// IssuePDFPath returns the path for a downloaded issue PDF.
// Issues are identified by publication year and issue number within the year.
func (d *Dir) IssuePDFPath(year, number int) string {
	return filepath.Join(d.IssuesPath(), fmt.Sprintf("mk_%d_%03d.pdf", year, number))
}

// IssueLinesPath returns the cached extraction output for an issue PDF.
// The external extractor writes positioned text lines next to the PDF.
func (d *Dir) IssueLinesPath(year, number int) string {
	return filepath.Join(d.IssuesPath(), fmt.Sprintf("mk_%d_%03d.lines.json", year, number))
}

// ActOutputPath returns the output file for one parsed act.
func (d *Dir) ActOutputPath(year int, serial string) string {
	return filepath.Join(d.OutputPath(), fmt.Sprintf("act_%d_%s.json", year, serial))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.IssuesPath(), d.OutputPath(), d.SpoolPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
