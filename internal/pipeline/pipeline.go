// Package pipeline transforms a raw documentation corpus into the three
// artifacts of the azindex data contract: the command manifest, the
// description lookup, and per-module detail files.
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/logging"
)

// Source yields the raw documentation corpus. How the corpus is acquired
// (filesystem scan, installed-module introspection, cloned repository) is
// the source's concern, not the pipeline's.
type Source interface {
	// Version returns the corpus version string, "0.0.0" if unknown.
	Version() string

	// Modules returns the ordered raw per-module help records.
	Modules(ctx context.Context) ([]docs.RawModule, error)
}

// Options configures a pipeline run.
type Options struct {
	// Rules is the ordered category table; nil selects DefaultRules.
	Rules []Rule

	// Concurrency bounds parallel module extraction; values below 1
	// select GOMAXPROCS.
	Concurrency int
}

// Stats counts what a pipeline run saw.
type Stats struct {
	// Commands is the number of manifest records produced.
	Commands int

	// Modules is the number of modules that produced at least one command.
	Modules int

	// SkippedModules counts modules that yielded zero commands.
	SkippedModules int

	// Degraded counts commands missing a synopsis, syntax, or examples.
	Degraded int
}

// Result holds the three artifacts of one pipeline run plus its stats.
// Module order follows source order; record order follows module order.
type Result struct {
	Manifest     docs.Manifest
	Descriptions map[string]string
	Modules      []docs.ModuleDetail
	Stats        Stats
}

// moduleResult is the pure per-module extraction output, combined by Run
// in source order.
type moduleResult struct {
	records      []docs.CommandRecord
	descriptions map[string]string
	detail       docs.ModuleDetail
	degraded     int
}

// Run extracts the corpus into a Result. Per-command failures degrade to
// empty fields and zero-command modules are skipped; a corpus in which no
// module yields any command is fatal and returns ErrEmptyCorpus.
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	raw, err := src.Modules(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading corpus")
	}

	workers := opts.Concurrency
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]moduleResult, len(raw))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range raw {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = extractModule(m, rules)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "extracting modules")
	}

	res := &Result{
		Manifest:     docs.Manifest{Version: src.Version()},
		Descriptions: make(map[string]string),
	}
	seen := make(map[string]bool)

	for i, mr := range results {
		if len(mr.records) == 0 {
			res.Stats.SkippedModules++
			logger.Warn("module yielded no commands", "module", raw[i].Name)
			continue
		}

		for _, rec := range mr.records {
			if seen[rec.Name] {
				logger.Warn("duplicate command name, keeping first",
					"name", rec.Name,
					"module", rec.Module)
				delete(mr.detail.Cmdlets, rec.Name)
				continue
			}
			seen[rec.Name] = true
			res.Manifest.Records = append(res.Manifest.Records, rec)
			if d, ok := mr.descriptions[rec.Name]; ok {
				res.Descriptions[rec.Name] = d
			}
		}

		if len(mr.detail.Cmdlets) > 0 {
			res.Modules = append(res.Modules, mr.detail)
			res.Stats.Modules++
		} else {
			res.Stats.SkippedModules++
		}
		res.Stats.Degraded += mr.degraded
	}
	res.Stats.Commands = len(res.Manifest.Records)

	if res.Stats.Commands == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyCorpus, "%d modules scanned", len(raw))
	}

	logger.Debug("extraction complete",
		"commands", res.Stats.Commands,
		"modules", res.Stats.Modules,
		"skipped", res.Stats.SkippedModules,
		"degraded", res.Stats.Degraded)

	return res, nil
}

// extractModule converts one raw module into records, descriptions, and
// its detail artifact. It is pure: no I/O, no shared state.
func extractModule(m docs.RawModule, rules []Rule) moduleResult {
	category := ResolveCategory(m.Name, rules)
	version := m.Version
	if version == "" {
		version = "0.0.0"
	}

	mr := moduleResult{
		descriptions: make(map[string]string),
		detail: docs.ModuleDetail{
			Module:  m.Name,
			Version: version,
			Cmdlets: make(map[string]docs.CmdletDetail),
		},
	}

	local := make(map[string]bool)
	for _, cmd := range m.Commands {
		if cmd.Name == "" || local[cmd.Name] {
			mr.degraded++
			continue
		}
		local[cmd.Name] = true

		synopsis := NormalizeSynopsis(cmd.Synopsis)
		syntax := SynthesizeSyntax(cmd.Name, cmd.Parameters)
		examples := CaptureExamples(cmd.Examples)

		if synopsis == "" || syntax == "" || len(examples) == 0 {
			mr.degraded++
		}

		mr.records = append(mr.records, docs.CommandRecord{
			Name:        cmd.Name,
			Verb:        Verb(cmd.Name),
			Module:      m.Name,
			Category:    category,
			HasExamples: len(examples) > 0,
		})
		if synopsis != "" {
			mr.descriptions[cmd.Name] = synopsis
		}
		mr.detail.Cmdlets[cmd.Name] = docs.CmdletDetail{
			Syntax:   syntax,
			Examples: examples,
		}
	}

	return mr
}
