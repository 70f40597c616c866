package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MinSuffix is inserted before the extension of minified output files.
const MinSuffix = ".min"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// MinifiedPath names the output file written beside path. extLen is the
// length of the extension including its dot; zero or less takes the real
// extension, so "prog.ic10" becomes "prog.min.ic10".
func MinifiedPath(path string, extLen int) (string, error) {
	if extLen <= 0 {
		ext := filepath.Ext(path)
		return strings.TrimSuffix(path, ext) + MinSuffix + ext, nil
	}

	base := filepath.Base(path)
	if extLen > len(base) {
		return "", fmt.Errorf("extension length %d is longer than file name %q", extLen, base)
	}
	cut := len(path) - extLen
	return path[:cut] + MinSuffix + path[cut:], nil
}
