// Package storage places attachment files under the upload dir and removes
// them again. Only the path strings live in the database.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// NewPath reserves a collision-free destination for an uploaded file,
// grouped per project. The uuid name keeps concurrent uploads of the same
// file name apart.
func (s *Store) NewPath(projectID uint, originalName string) (string, error) {
	dir := filepath.Join(s.Dir, "messages", fmt.Sprintf("%d", projectID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.Join(dir, uuid.New().String()+ext), nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error: message deletion must not be blocked by a missing blob.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
