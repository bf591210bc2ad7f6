package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
)

// ValidateInput checks that path is a readable, non-empty CSV or XLSX file
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if !IsInput(path) {
		return fmt.Errorf("%s (extension %q): %w", path, strings.ToLower(filepath.Ext(path)), dataprocessing.ErrUnsupportedFormat)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, dataprocessing.ErrEmptyInput)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	return file.Close()
}
