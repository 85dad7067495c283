package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArtifactPaths(t *testing.T) {
	dir := filepath.Join("var", "data")

	if got := ManifestPath(dir); got != filepath.Join(dir, "manifest.json") {
		t.Errorf("ManifestPath() = %q", got)
	}
	if got := DescriptionsPath(dir); got != filepath.Join(dir, "descriptions.json") {
		t.Errorf("DescriptionsPath() = %q", got)
	}
	if got := ModuleDetailPath(dir, "Az.Compute"); got != filepath.Join(dir, "modules", "Az.Compute.json") {
		t.Errorf("ModuleDetailPath() = %q", got)
	}
}

func TestModuleDetailPath_SanitizesSeparators(t *testing.T) {
	dir := t.TempDir()
	got := ModuleDetailPath(dir, ".."+string(filepath.Separator)+"escape")

	if !strings.HasPrefix(got, filepath.Join(dir, "modules")) {
		t.Errorf("ModuleDetailPath() escaped the modules dir: %q", got)
	}
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	if err := EnsureDataDir(dir); err != nil {
		t.Fatalf("EnsureDataDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "modules"))
	if err != nil {
		t.Fatalf("modules dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("modules path should be a directory")
	}

	// Idempotent.
	if err := EnsureDataDir(dir); err != nil {
		t.Errorf("second EnsureDataDir() error = %v", err)
	}
}
