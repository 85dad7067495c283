package doctor

import (
	"fmt"
	"os"

	"github.com/azindex/azindex/internal/config"
	"github.com/azindex/azindex/internal/store"
)

// ConfigCheck validates that the configuration file, when present,
// loads and unmarshals cleanly.
type ConfigCheck struct{}

func (c *ConfigCheck) Name() string     { return "config-file" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	cfg, err := config.Load("")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("configuration failed to load: %v", err)
		result.FixHint = "Fix or remove the config.yaml file"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("configuration loaded (data_dir %s)", cfg.DataDir)
	return result
}

// DataDirCheck verifies the data directory exists.
type DataDirCheck struct {
	Dir string
}

func (c *DataDirCheck) Name() string     { return "data-dir" }
func (c *DataDirCheck) Category() string { return "artifacts" }

func (c *DataDirCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.Dir)
	switch {
	case err != nil:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("data directory %s does not exist", c.Dir)
		result.FixHint = "Run 'azindex extract <docs-root>' to create it"
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s exists but is not a directory", c.Dir)
		result.FixHint = "Remove the file or point data_dir elsewhere"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("data directory %s exists", c.Dir)
	}
	return result
}

// ManifestCheck verifies the manifest loads and its record names are
// unique.
type ManifestCheck struct {
	Dir string
}

func (c *ManifestCheck) Name() string     { return "manifest" }
func (c *ManifestCheck) Category() string { return "artifacts" }

func (c *ManifestCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	manifest, err := store.LoadManifest(c.Dir)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("manifest unreadable: %v", err)
		result.FixHint = "Run 'azindex extract <docs-root>' to rebuild the artifacts"
		return result
	}

	if len(manifest.Records) == 0 {
		result.Status = SeverityWarning
		result.Message = "manifest holds no records"
		result.FixHint = "Re-run 'azindex extract' against a full documentation clone"
		return result
	}

	seen := make(map[string]bool, len(manifest.Records))
	duplicates := 0
	for _, r := range manifest.Records {
		if seen[r.Name] {
			duplicates++
		}
		seen[r.Name] = true
	}
	if duplicates > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d duplicate record names in the manifest", duplicates)
		result.FixHint = "Re-run 'azindex extract' to rebuild the artifacts"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d commands from release %s", len(manifest.Records), manifest.Version)
	return result
}

// DescriptionsCheck reports how much of the manifest the description
// lookup covers. A missing file only coarsens search, so it is a
// warning rather than an error.
type DescriptionsCheck struct {
	Dir string
}

func (c *DescriptionsCheck) Name() string     { return "descriptions" }
func (c *DescriptionsCheck) Category() string { return "artifacts" }

func (c *DescriptionsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	manifest, err := store.LoadManifest(c.Dir)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: manifest unreadable"
		return result
	}

	descriptions, err := store.LoadDescriptions(c.Dir)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("descriptions unreadable: %v", err)
		result.FixHint = "Search will match on names only until the file is rebuilt"
		return result
	}

	covered := 0
	for _, r := range manifest.Records {
		if descriptions[r.Name] != "" {
			covered++
		}
	}
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d of %d commands have a synopsis", covered, len(manifest.Records))
	return result
}

// ModuleDetailCheck verifies every manifested module has a readable
// detail file and that detail entries agree with the manifest.
type ModuleDetailCheck struct {
	Dir string
}

func (c *ModuleDetailCheck) Name() string     { return "module-details" }
func (c *ModuleDetailCheck) Category() string { return "artifacts" }

func (c *ModuleDetailCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	manifest, err := store.LoadManifest(c.Dir)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: manifest unreadable"
		return result
	}

	owner := make(map[string]string, len(manifest.Records))
	modules := make(map[string]bool)
	for _, r := range manifest.Records {
		owner[r.Name] = r.Module
		modules[r.Module] = true
	}

	missing := 0
	orphans := 0
	for module := range modules {
		detail, err := store.LoadModuleDetail(c.Dir, module)
		if err != nil {
			missing++
			continue
		}
		for name := range detail.Cmdlets {
			if owner[name] != module {
				orphans++
			}
		}
	}

	switch {
	case missing > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d module detail files unreadable", missing, len(modules))
		result.FixHint = "Affected cmdlets show without syntax and examples; re-run 'azindex extract'"
	case orphans > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d detail entries disagree with the manifest", orphans)
		result.FixHint = "Re-run 'azindex extract' to rebuild consistent artifacts"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d module detail files consistent", len(modules))
	}
	return result
}
