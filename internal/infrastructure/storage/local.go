package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LocalStorage keeps uploaded files in a directory served under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
	logger    *logrus.Logger
}

func NewLocalStorage(dir, urlPrefix string, logger *logrus.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		urlPrefix: urlPrefix,
		logger:    logger,
	}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes content under name and returns its public URL. A partially
// written file is removed on failure.
func (s *LocalStorage) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	filePath := filepath.Join(s.dir, name)

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"file": name, "bytes": written}).Debug("file stored")
	return path.Join(s.urlPrefix, name), nil
}
