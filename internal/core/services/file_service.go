package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vendora/vendora_backend/internal/apperrors"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
)

// maxUploadSize is the upload cap in bytes (5 MB).
const maxUploadSize = 5 << 20

// allowedImageExtensions are the accepted product image extensions.
var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// localFileService stores uploads on the local filesystem under baseDir.
// Stored files are addressed as "/uploads/<uuid><ext>".
type localFileService struct {
	baseDir string
}

// NewLocalFileService creates the uploads directory if needed and returns a
// file service backed by it.
func NewLocalFileService(baseDir string) (portssvc.FileSvcFacade, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", baseDir, err)
	}
	return &localFileService{baseDir: baseDir}, nil
}

// SaveFile validates the upload and writes it under the uploads directory
// with a random name, returning the public path of the stored file.
func (s *localFileService) SaveFile(ctx context.Context, filename string, size int64, content io.Reader) (string, error) {
	if size <= 0 || size > maxUploadSize {
		return "", fmt.Errorf("file size %d out of bounds: %w", size, apperrors.ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", fmt.Errorf("file extension %q not allowed: %w", ext, apperrors.ErrValidation)
	}

	storedName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	// The size reported by the client is capped above; LimitReader keeps an
	// oversized body from sneaking past it.
	if _, err := io.Copy(dst, io.LimitReader(content, maxUploadSize+1)); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return path.Join("/uploads", storedName), nil
}

// DeleteFile removes a stored file by its public path. Missing files are
// ignored.
func (s *localFileService) DeleteFile(ctx context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid stored file path %q: %w", publicPath, apperrors.ErrValidation)
	}

	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", publicPath, err)
	}
	return nil
}
