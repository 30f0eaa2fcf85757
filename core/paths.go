package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DerivedPath returns a sibling path for a processed output, built from the
// input's stem plus an operation suffix, always with a .png extension
// (alpha-capable output is required).
//
// Example:
//
//	DerivedPath("/tmp/cat.jpg", "_nobg")    // /tmp/cat_nobg.png
//	DerivedPath("/tmp/cat.png", "_32x32")   // /tmp/cat_32x32.png
func DerivedPath(inputPath, suffix string) string {
	dir := filepath.Dir(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, stem+suffix+".png")
}

// SizeSuffix returns the operation suffix for a square icon size.
func SizeSuffix(size int) string {
	return fmt.Sprintf("_%dx%d", size, size)
}

// UniquePath returns path unchanged when nothing exists there, otherwise the
// first of path_1, path_2, ... that does not exist. The counter goes before
// the extension.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// InputSearchPaths returns the conventional directories searched for a
// relative input filename, in preference order.
func InputSearchPaths() []string {
	paths := []string{"."}
	if cwd, err := os.Getwd(); err == nil {
		paths = []string{
			cwd,
			filepath.Join(cwd, "images"),
			filepath.Join(cwd, "input"),
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Pictures"),
		)
	}
	return paths
}

// FindInputFile resolves filename to an existing file. Absolute paths are
// checked directly; relative names are searched across InputSearchPaths.
// Returns the resolved path and the list of directories searched when not
// found.
func FindInputFile(filename string) (string, []string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil, nil
		}
		return "", nil, fmt.Errorf("core: input file not found: %s", filename)
	}

	searched := InputSearchPaths()
	for _, dir := range searched {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, searched, nil
		}
	}

	return "", searched, fmt.Errorf("core: input file %q not found in %d searched directories", filename, len(searched))
}
