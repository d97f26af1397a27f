package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".txt"

// FileStore keeps notes as <title>.txt files inside a base directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Dir returns the base directory notes are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path for the note with the given title.
func (s *FileStore) Path(title string) string {
	return filepath.Join(s.dir, title+fileExt)
}

// Add writes content to the note file, replacing any previous content.
func (s *FileStore) Add(title, content string) error {
	if title == "" || content == "" {
		return ErrEmpty
	}
	if err := checkTitle(title); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(title), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note %q: %w", title, err)
	}
	return nil
}

// Read returns the full note. A missing file yields an error wrapping fs.ErrNotExist.
func (s *FileStore) Read(title string) (Note, error) {
	if err := checkTitle(title); err != nil {
		return Note{}, err
	}
	data, err := os.ReadFile(s.Path(title))
	if err != nil {
		return Note{}, fmt.Errorf("read note %q: %w", title, err)
	}
	return Note{Title: title, Content: string(data)}, nil
}

// Delete removes the note file. A missing file yields an error wrapping fs.ErrNotExist.
func (s *FileStore) Delete(title string) error {
	if err := checkTitle(title); err != nil {
		return err
	}
	if err := os.Remove(s.Path(title)); err != nil {
		return fmt.Errorf("delete note %q: %w", title, err)
	}
	return nil
}

func checkTitle(title string) error {
	if title == "" || title == "." || title == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	if strings.ContainsAny(title, `/\`) || strings.ContainsRune(title, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	return nil
}
