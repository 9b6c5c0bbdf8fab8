package project

import (
	"fmt"
	"os"
)

// MissingFileError reports a failed path-existence check with a human
// description of what the path was supposed to be.
type MissingFileError struct {
	Description string
	Path        string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s not found: %s (check the file path and try again)",
		e.Description, e.Path)
}

// VerifyFile fails with a *MissingFileError if path does not exist. The
// description names the file's role in error messages ("input model",
// "states file", ...).
func VerifyFile(path, description string) error {
	if description == "" {
		description = "file"
	}
	if _, err := os.Stat(path); err != nil {
		return &MissingFileError{Description: description, Path: path}
	}
	return nil
}
