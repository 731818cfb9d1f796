// Package intake holds the user's spending input and turns it into a /predict payload.
package intake

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Blob is an in-memory file selected by the user.
type Blob struct {
	Name string
	Data []byte
}

// State is the intake form: an optional file, free text, and an optional default date.
// File and text are alternative inputs; both are sent when both are set.
type State struct {
	file *Blob
	text string
	date string
}

// SetFile replaces the selected file. Text is left untouched.
func (s *State) SetFile(b Blob) {
	s.file = &b
}

// ClearFile drops the selected file.
func (s *State) ClearFile() {
	s.file = nil
}

// SetText replaces the text buffer. The file is left untouched.
func (s *State) SetText(v string) {
	s.text = v
}

// SetDate replaces the default date. The backend validates the format.
func (s *State) SetDate(v string) {
	s.date = v
}

// File returns the selected file, or nil.
func (s State) File() *Blob {
	return s.file
}

// Text returns the raw text buffer.
func (s State) Text() string {
	return s.text
}

// Date returns the raw date string.
func (s State) Date() string {
	return s.date
}

// CanSubmit reports whether a file is set or the trimmed text is non-empty.
func (s State) CanSubmit() bool {
	return s.file != nil || strings.TrimSpace(s.text) != ""
}

// LoadFile reads path into a Blob named after the file's base name.
func LoadFile(path string) (Blob, error) {
	//nolint:gosec // path is chosen by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, eris.Wrapf(err, "intake: reading %s", path)
	}
	return Blob{Name: filepath.Base(path), Data: data}, nil
}
