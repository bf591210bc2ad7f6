package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPaths are the files one transformation run writes
type OutputPaths struct {
	Dir         string
	Stem        string
	Table       string
	SummaryJSON string
	SummaryText string
	Records     string
}

// ResolveOutputPaths derives output file names from the input file name.
// An empty outputDir falls back to the directory of the input.
func ResolveOutputPaths(inputPath, outputDir string) OutputPaths {
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "funding"
	}

	return OutputPaths{
		Dir:         outputDir,
		Stem:        stem,
		Table:       filepath.Join(outputDir, stem+TableFileSuffix),
		SummaryJSON: filepath.Join(outputDir, stem+SummaryJSONFileSuffix),
		SummaryText: filepath.Join(outputDir, stem+SummaryTextFileSuffix),
		Records:     filepath.Join(outputDir, stem+RecordsFileSuffix),
	}
}

// EnsureDir creates the output directory if needed
func (p OutputPaths) EnsureDir() error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.Dir, err)
	}
	return nil
}

// Breakdown is the file for the per-category breakdown by group
func (p OutputPaths) Breakdown(group string) string {
	return filepath.Join(p.Dir, p.Stem+"_by_"+group+BreakdownFileExt)
}
