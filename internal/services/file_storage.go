package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// allowedImageTypes are the content types accepted for uploads. Matching is
// case-insensitive.
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// FileStorage stores uploaded images under a configured root directory
// with deterministic filenames.
type FileStorage struct {
	root string
}

// NewFileStorage creates a FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{root: dir}
}

// IsAllowedContentType reports whether the content type is an accepted image type.
func IsAllowedContentType(contentType string) bool {
	for _, t := range allowedImageTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// fileExtension derives an extension from the original filename's suffix,
// falling back to the content-type map, else empty.
func fileExtension(originalFilename, contentType string) string {
	if idx := strings.LastIndex(originalFilename, "."); idx >= 0 {
		return originalFilename[idx:]
	}
	return contentTypeExtensions[strings.ToLower(contentType)]
}

// StoreWorkoutImage writes a workout image as cover_<workoutID><ext>,
// replacing any existing file of the same name. It returns the filename.
func (s *FileStorage) StoreWorkoutImage(data []byte, originalFilename, contentType string, workoutID uint64) (string, error) {
	filename := fmt.Sprintf("cover_%d%s", workoutID, fileExtension(originalFilename, contentType))
	return filename, s.write(filename, data)
}

// StoreProfilePhoto writes an avatar as profile_<userID><ext>.
func (s *FileStorage) StoreProfilePhoto(data []byte, originalFilename, contentType string, userID uint64) (string, error) {
	filename := fmt.Sprintf("profile_%d%s", userID, fileExtension(originalFilename, contentType))
	return filename, s.write(filename, data)
}

func (s *FileStorage) write(filename string, data []byte) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// Load reads a stored file's bytes.
func (s *FileStorage) Load(filename string) ([]byte, error) {
	return os.ReadFile(s.Path(filename))
}

// Path resolves a stored filename to its on-disk path. The filename is
// reduced to its base so a crafted name cannot escape the root.
func (s *FileStorage) Path(filename string) string {
	return filepath.Join(s.root, filepath.Base(filename))
}

// Exists reports whether a stored file is present.
func (s *FileStorage) Exists(filename string) bool {
	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// Delete removes a stored file. It is idempotent: a missing file or an I/O
// failure both report false, never an error.
func (s *FileStorage) Delete(filename string) bool {
	err := os.Remove(s.Path(filename))
	return err == nil
}
