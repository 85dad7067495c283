// Package paths resolves where azindex keeps its configuration and
// generated artifacts, following the XDG base directory spec, and names
// the files of the on-disk data contract.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "azindex"

// Artifact file names within a data directory.
const (
	ManifestFile     = "manifest.json"
	DescriptionsFile = "descriptions.json"
	ModulesDir       = "modules"
)

// DefaultDirPerm is the permission for newly created data directories.
const DefaultDirPerm = 0o755

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// DefaultDataDir returns where extracted artifacts live unless
// overridden: <DataHome>/azindex/data.
func DefaultDataDir() string {
	return filepath.Join(DataHome(), AppName, "data")
}

// ManifestPath returns the manifest artifact path within dataDir.
func ManifestPath(dataDir string) string {
	return filepath.Join(dataDir, ManifestFile)
}

// DescriptionsPath returns the descriptions artifact path within dataDir.
func DescriptionsPath(dataDir string) string {
	return filepath.Join(dataDir, DescriptionsFile)
}

// ModuleDetailPath returns the per-module artifact path within dataDir,
// e.g. <dataDir>/modules/Az.Compute.json. The module name is sanitized
// so a hostile manifest cannot escape the modules directory.
func ModuleDetailPath(dataDir, module string) string {
	name := strings.ReplaceAll(module, string(filepath.Separator), "_")
	return filepath.Join(dataDir, ModulesDir, name+".json")
}

// EnsureDataDir creates dataDir and its modules subdirectory.
func EnsureDataDir(dataDir string) error {
	return os.MkdirAll(filepath.Join(dataDir, ModulesDir), DefaultDirPerm)
}
