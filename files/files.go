package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"

	"github.com/google/uuid"
)

// Upload is one inbound binary blob, already read off the wire.
type Upload struct {
	Filename string
	Size     int64
	Content  []byte
}

// Service enforces upload constraints and writes accepted files under dir
// with a generated storage name.
type Service struct {
	dir         string
	maxSize     int64
	allowedExts map[string]struct{}
}

func NewService(dir string, maxSize int64, allowedExts []string) *Service {
	exts := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	return &Service{dir: dir, maxSize: maxSize, allowedExts: exts}
}

// CheckCount rejects batches larger than max.
func (s *Service) CheckCount(count, max int) error {
	if count > max {
		return apperrors.ErrFileCountExceeded
	}
	return nil
}

// Check validates a single upload against size and extension constraints.
func (s *Service) Check(u Upload) error {
	if u.Size > s.maxSize {
		return apperrors.ErrFileSizeExceeded
	}
	if _, ok := s.allowedExts[strings.ToLower(Extension(u.Filename))]; !ok {
		return apperrors.ErrFileExtensionNotAllowed
	}
	return nil
}

// Save writes the upload to disk and returns the generated stored filename
// and full path. The stored name never matches the original filename.
func (s *Service) Save(u Upload) (storedName string, path string, err error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", "", apperrors.ErrFileSaveFailed
	}

	ext := Extension(u.Filename)
	storedName = uuid.New().String()
	if ext != "" {
		storedName += "." + ext
	}
	path = filepath.Join(s.dir, storedName)

	if err := os.WriteFile(path, u.Content, 0644); err != nil {
		return "", "", apperrors.ErrFileSaveFailed
	}
	return storedName, path, nil
}

// Extension returns the filename extension without the leading dot, or ""
// when there is none.
func Extension(filename string) string {
	if !strings.Contains(filename, ".") {
		return ""
	}
	return filename[strings.LastIndex(filename, ".")+1:]
}
