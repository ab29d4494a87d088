package excel

import (
	"fmt"
	"os"
)

// DirLister lists report files in a history directory
type DirLister struct{}

// NewDirLister creates a directory lister
func NewDirLister() *DirLister {
	return &DirLister{}
}

// ListReports returns the names of regular files in dir. A missing
// directory is not an error.
func (DirLister) ListReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list history directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
