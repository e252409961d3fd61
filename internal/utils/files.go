package utils

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/afero"

	"evm_tx_toolkit/internal/core/domain"
)

// DefaultFs is the filesystem used by the command line tool.
var DefaultFs afero.Fs = afero.NewOsFs()

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// ReadFile returns the whole content of path as UTF-8 text.
func ReadFile(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", domain.ErrFilesystem, path, err)
	}
	return string(data), nil
}

// WriteFile appends content to path, creating the file if needed.
func WriteFile(fs afero.Fs, path, content string) error {
	f, err := NewFile(fs, path)
	if err != nil {
		return err
	}
	if err := AppendTo(f, content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFilesystem, path, err)
	}
	return nil
}

// NewFile opens path for appending, creating it if needed. The caller closes it.
func NewFile(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrFilesystem, path, err)
	}
	return f, nil
}

// AppendTo writes content to an open stream.
func AppendTo(w io.Writer, content string) error {
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("%w: append: %w", domain.ErrFilesystem, err)
	}
	return nil
}

// EnsurePath creates dir and its parents if absent. It is a no-op when dir exists.
func EnsurePath(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", domain.ErrFilesystem, dir, err)
	}
	return nil
}

// FindAllFiles lists the names of the non-directory entries directly inside dir, sorted.
func FindAllFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrFilesystem, dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
