package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoInputs is returned when a directory holds no supported input files
var ErrNoInputs = errors.New("no input files found")

// Supported input extensions
var inputExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// IsInput reports whether name has a supported extension and is not an
// editor lock file
func IsInput(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~lock.") {
		return false
	}
	return inputExtensions[strings.ToLower(filepath.Ext(base))]
}

// FindInputs expands each path into input files. Files are validated and
// kept in argument order; directories contribute their supported files
// sorted by name, without recursing.
func FindInputs(paths ...string) ([]FileInfo, error) {
	var found []FileInfo
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", path, err)
		}

		if !info.IsDir() {
			if err := ValidateInput(path); err != nil {
				return nil, err
			}
			found = append(found, fileInfo(path, info))
			continue
		}

		inDir, err := findInDirectory(path)
		if err != nil {
			return nil, err
		}
		if len(inDir) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrNoInputs)
		}
		found = append(found, inDir...)
	}
	return found, nil
}

func findInDirectory(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsInput(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo(filepath.Join(dir, entry.Name()), info))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

func fileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
