// Package store reads and writes the on-disk data contract: the compact
// manifest, the description lookup, and per-module detail files.
package store

import (
	"encoding/json"
	"os"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/paths"
	"github.com/azindex/azindex/pkg/fileutil"
)

// Write persists all three artifacts of one pipeline run into dataDir.
// The manifest and module details are minified for size; descriptions
// stay indented for diffability. Writes are atomic per file.
func Write(dataDir string, manifest docs.Manifest, descriptions map[string]string, modules []docs.ModuleDetail) error {
	if err := paths.EnsureDataDir(dataDir); err != nil {
		return errors.Wrap(err, "creating data dir")
	}

	if err := fileutil.WriteCompactJSON(paths.ManifestPath(dataDir), manifest); err != nil {
		return errors.Wrap(err, "writing manifest")
	}
	if err := fileutil.WriteJSON(paths.DescriptionsPath(dataDir), descriptions); err != nil {
		return errors.Wrap(err, "writing descriptions")
	}
	for _, m := range modules {
		if err := fileutil.WriteCompactJSON(paths.ModuleDetailPath(dataDir, m.Module), m); err != nil {
			return errors.Wrapf(err, "writing module %s", m.Module)
		}
	}
	return nil
}

// LoadManifest reads the manifest artifact. A missing or malformed
// manifest is fatal for the index and reported as ErrDataUnavailable.
func LoadManifest(dataDir string) (*docs.Manifest, error) {
	data, err := os.ReadFile(paths.ManifestPath(dataDir))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "reading manifest: %v", err)
	}

	var m docs.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(errors.ErrDataUnavailable, "parsing manifest: %v", err)
	}
	return &m, nil
}

// LoadDescriptions reads the description lookup. Callers treat failure
// as "descriptions absent", not as a fatal condition.
func LoadDescriptions(dataDir string) (map[string]string, error) {
	data, err := os.ReadFile(paths.DescriptionsPath(dataDir))
	if err != nil {
		return nil, errors.Wrap(err, "reading descriptions")
	}

	var d map[string]string
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "parsing descriptions")
	}
	return d, nil
}

// LoadModuleDetail reads one per-module artifact. A missing file maps to
// ErrNotFound; callers degrade to the manifest-only view on any error.
func LoadModuleDetail(dataDir, module string) (*docs.ModuleDetail, error) {
	data, err := os.ReadFile(paths.ModuleDetailPath(dataDir, module))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "module %s", module)
		}
		return nil, errors.Wrapf(err, "reading module %s", module)
	}

	var m docs.ModuleDetail
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing module %s", module)
	}
	return &m, nil
}
