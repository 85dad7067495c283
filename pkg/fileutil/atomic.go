// Package fileutil provides file system utilities, including atomic write
// operations for the JSON artifacts azindex produces.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/azindex/azindex/internal/errors"
)

// WriteFile writes data to path atomically using a temp file + rename.
// An interrupted write leaves any existing file intact. The caller is
// responsible for ensuring the parent directory exists.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".azindex-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		// Removal only matters when the rename never happened.
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	return errors.Wrap(os.Rename(tmpName, path), "renaming temp file")
}

// WriteJSON writes v as indented JSON to path atomically with 0644
// permissions and a trailing newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	data = append(data, '\n')
	return WriteFile(path, data, 0o644)
}

// WriteCompactJSON writes v as minified JSON to path atomically with 0644
// permissions. Used for the manifest and per-module artifacts, where size
// matters more than readability.
func WriteCompactJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return WriteFile(path, data, 0o644)
}
