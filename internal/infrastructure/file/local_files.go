package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalFiles opens import sources and stores exports under BaseDir.
type LocalFiles struct {
	BaseDir string
}

func NewLocalFiles(baseDir string) *LocalFiles {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalFiles{BaseDir: baseDir}
}

func (s *LocalFiles) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.resolve(sourcePath)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}

// Save writes content to name under BaseDir and returns the full path.
func (s *LocalFiles) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := s.resolve(filepath.Base(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write file %s: %w", path, err)
	}
	return path, nil
}

func (s *LocalFiles) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.BaseDir, path)
}
