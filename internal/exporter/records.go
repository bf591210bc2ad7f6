package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// EncodeRecords writes records as an indented JSON array. A nil slice is
// written as [].
func EncodeRecords(w io.Writer, records []domain.FundingRecord) error {
	if records == nil {
		records = []domain.FundingRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// WriteRecordsJSON writes records to outputPath, creating parent directories
func WriteRecordsJSON(records []domain.FundingRecord, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create records file: %w", err)
	}

	if err := EncodeRecords(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
