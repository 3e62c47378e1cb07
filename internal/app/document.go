package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// untitled is the display name of a document without a file.
const untitled = "Untitled"

// Document tracks the file behind the buffer.
type Document struct {
	// Path is the absolute file path, empty for a new document.
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	modified bool
}

// newDocument creates a document for path. An empty path gives an
// untitled document.
func newDocument(path string) (*Document, error) {
	if path == "" {
		return &Document{Name: untitled}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return &Document{Path: abs, Name: filepath.Base(abs)}, nil
}

// Read returns the file contents. A file that does not exist yet reads as
// empty so that it is created on the first save.
func (d *Document) Read() (string, error) {
	if d.Path == "" {
		return "", nil
	}
	data, err := os.ReadFile(d.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", NewOperationError("open", d.Path, err)
	}
	return string(data), nil
}

// Write saves text to the file through a temporary file in the same
// directory and clears the modified flag.
func (d *Document) Write(text string) error {
	if d.Path == "" {
		return NewOperationError("save", d.Name, ErrNoPath)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.Path), "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return NewOperationError("save", d.Path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewOperationError("save", d.Path, err).WithContext("write")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", d.Path, err).WithContext("close")
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", d.Path, err).WithContext("chmod")
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", d.Path, err).WithContext("rename")
	}

	d.modified = false
	return nil
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified = modified
}

// Title returns the name with a marker for unsaved changes.
func (d *Document) Title() string {
	if d.modified {
		return d.Name + " *"
	}
	return d.Name
}
