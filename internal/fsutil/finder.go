// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadDirUnordered returns the entries directly under dir in the order the
// operating system enumerates them. Unlike os.ReadDir, no sort is applied.
func ReadDirUnordered(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}

// IsDir reports whether the entry found under parent is a directory.
// Symbolic links are followed.
func IsDir(parent string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

// IsRegularFile reports whether path exists and is a regular file.
// Symbolic links are followed.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NormalizeExtension returns ext with exactly one leading dot, or an empty
// string if ext has no characters besides dots.
func NormalizeExtension(ext string) string {
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// HasExtension reports whether name ends with the given extension. The
// comparison is exact, so "model.FBX" does not match ".fbx".
func HasExtension(name, extension string) bool {
	if extension == "" {
		panic("extension must not be empty")
	}
	ext := NormalizeExtension(extension)
	return len(name) > len(ext) && strings.HasSuffix(name, ext)
}
