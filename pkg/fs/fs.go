package fs

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Appends the whole contents of a regular file to buf.
func (lfs *LocalFileSystem) ReadInto(filePath string, buf *bytes.Buffer) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.IsDir() {
		return fmt.Errorf("%s is a directory", filePath)
	}

	if size := stat.Size(); size > 0 && int64(buf.Available()) < size {
		buf.Grow(int(size))
	}

	_, err = buf.ReadFrom(file)
	return err
}

// Lists regular files under sourceDir in lexical order, skipping any path
// relative to sourceDir that contains one of excludeDirs.
func (lfs *LocalFileSystem) ListFiles(sourceDir string, excludeDirs []string) ([]string, error) {
	files := make([]string, 0)

	if err := filepath.WalkDir(sourceDir, fs.WalkDirFunc(func(path string, ds fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if isAncestor(excludeDirs, rel) {
			if ds.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ds.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})); err != nil {
		return nil, err
	}

	return files, nil
}

func isAncestor(excludeDirs []string, path string) bool {
	for _, excludeDir := range excludeDirs {
		if excludeDir != "" && strings.Contains(path, excludeDir) {
			return true
		}
	}
	return false
}
