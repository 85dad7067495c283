package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	// Run from an empty directory so no stray config.yaml is picked up.
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to a non-empty path")
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\ndocs_root: /srv/azure-docs-powershell\ndata_dir: /srv/azindex\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocsRoot != "/srv/azure-docs-powershell" {
		t.Errorf("DocsRoot = %q", cfg.DocsRoot)
	}
	if cfg.DataDir != "/srv/azindex" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	resetViper(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() with an explicit missing file should fail")
	}
}
