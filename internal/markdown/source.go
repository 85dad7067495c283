// Package markdown implements pipeline.Source over a cloned
// azure-docs-powershell tree: the newest azps-* release directory is
// selected, its Az.* module directories are walked in name order, and
// each cmdlet markdown file is parsed into a raw help record.
package markdown

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/logging"
)

var (
	releaseVersionRe = regexp.MustCompile(`azps-(\d+\.\d+\.\d+)`)
	digitRunRe       = regexp.MustCompile(`\d+`)
)

// Source reads one release of the documentation tree.
type Source struct {
	root    string
	version string
}

// New locates the highest-versioned azps-* release directory under
// docsRoot, looking one level deeper when the root itself holds none.
func New(docsRoot string) (*Source, error) {
	release, err := findLatestRelease(docsRoot)
	if err != nil {
		return nil, err
	}

	version := "0.0.0"
	if m := releaseVersionRe.FindStringSubmatch(filepath.Base(release)); m != nil {
		version = m[1]
	}
	return &Source{root: release, version: version}, nil
}

// Root returns the selected release directory.
func (s *Source) Root() string { return s.root }

// Version returns the release version parsed from the directory name,
// "0.0.0" when the name carries none.
func (s *Source) Version() string { return s.version }

// Modules reads every Az.* module directory of the release in name
// order. Unreadable directories and files are logged and skipped, never
// fatal; modules that yield no commands are still returned so the
// caller can count them.
func (s *Source) Modules(ctx context.Context) ([]docs.RawModule, error) {
	logger := logging.FromContext(ctx)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrap(err, "reading release directory")
	}

	var modules []docs.RawModule
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "Az.") {
			continue
		}
		modules = append(modules, s.readModule(e.Name(), logger))
	}
	return modules, nil
}

// readModule parses every markdown file of one module directory. The
// module version comes from the first file whose front matter names
// this module and carries a version, typically the Az.X.md index file.
func (s *Source) readModule(name string, logger *slog.Logger) docs.RawModule {
	mod := docs.RawModule{Name: name}

	dir := filepath.Join(s.root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("skipping unreadable module directory", "module", name, "error", err)
		return mod
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}

		doc, err := parseDoc(e.Name(), name, content)
		if err != nil {
			logger.Warn("skipping unparsable file", "path", path, "error", err)
			continue
		}
		if mod.Version == "" && doc.ModuleName == name && doc.ModuleVersion != "" {
			mod.Version = doc.ModuleVersion
		}
		if doc.IsCmdlet {
			mod.Commands = append(mod.Commands, doc.Command)
		}
	}
	return mod
}

// findLatestRelease returns the azps-* directory with the highest
// version key among docsRoot and its immediate subdirectories.
func findLatestRelease(docsRoot string) (string, error) {
	candidates, err := releaseDirs(docsRoot)
	if err != nil {
		return "", errors.Wrap(err, "reading docs root")
	}
	if len(candidates) == 0 {
		entries, err := os.ReadDir(docsRoot)
		if err != nil {
			return "", errors.Wrap(err, "reading docs root")
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			sub, err := releaseDirs(filepath.Join(docsRoot, e.Name()))
			if err != nil {
				continue
			}
			candidates = append(candidates, sub...)
		}
	}
	if len(candidates) == 0 {
		return "", errors.Newf("no azps-* release directory found under %s", docsRoot)
	}

	best := candidates[0]
	bestKey := releaseKey(filepath.Base(best))
	for _, c := range candidates[1:] {
		if key := releaseKey(filepath.Base(c)); lessKey(bestKey, key) {
			best, bestKey = c, key
		}
	}
	return best, nil
}

func releaseDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "azps-") {
			dirs = append(dirs, filepath.Join(dir, e.Name()))
		}
	}
	return dirs, nil
}

// releaseKey extracts every digit run of a directory name as a
// comparable version key.
func releaseKey(name string) []int {
	var key []int
	for _, run := range digitRunRe.FindAllString(name, -1) {
		n, _ := strconv.Atoi(run)
		key = append(key, n)
	}
	return key
}

func lessKey(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
