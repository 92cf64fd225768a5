package sqsutil

import (
	"os"
	"path/filepath"
)

// WriteBytes writes bz to fileName under directory, creating the directory if needed.
// An existing file is overwritten.
func WriteBytes(directory, fileName string, bz []byte) error {
	if err := os.MkdirAll(directory, os.ModePerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(directory, fileName), bz, 0o644)
}
