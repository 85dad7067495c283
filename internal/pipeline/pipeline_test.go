package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/logging"
)

// fakeSource implements Source over in-memory raw modules.
type fakeSource struct {
	version string
	modules []docs.RawModule
	err     error
}

func (s *fakeSource) Version() string { return s.version }

func (s *fakeSource) Modules(context.Context) ([]docs.RawModule, error) {
	return s.modules, s.err
}

func testCorpus() []docs.RawModule {
	return []docs.RawModule{
		{
			Name:    "Az.Compute",
			Version: "7.1.0",
			Commands: []docs.RawCommand{
				{
					Name:     "Get-AzVM",
					Synopsis: "Gets a virtual machine.\n[Az.Compute]",
					Parameters: []docs.Parameter{
						{Name: "ResourceGroupName", Type: "String"},
						{Name: "Name", Type: "String"},
					},
					Examples: []string{"Get-AzVM -Name web01"},
				},
				{
					Name:       "Stop-AzVM",
					Synopsis:   "Stops a virtual machine.",
					Parameters: []docs.Parameter{{Name: "Name", Type: "String", Required: true}},
					Examples:   nil, // degrades, still indexed
				},
			},
		},
		{
			Name:    "Az.Network",
			Version: "", // unresolvable, becomes 0.0.0
			Commands: []docs.RawCommand{
				{
					Name:       "New-AzVnet",
					Synopsis:   "Creates a virtual network.",
					Parameters: []docs.Parameter{{Name: "Name", Type: "String"}},
					Examples:   []string{"New-AzVnet -Name prod"},
				},
			},
		},
		{
			Name:     "Az.Empty",
			Version:  "1.0.0",
			Commands: nil, // skipped, not fatal
		},
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func TestRun_BuildsAllArtifacts(t *testing.T) {
	src := &fakeSource{version: "14.3.0", modules: testCorpus()}

	res, err := Run(testContext(t), src, Options{})
	require.NoError(t, err)

	assert.Equal(t, "14.3.0", res.Manifest.Version)
	require.Len(t, res.Manifest.Records, 3)

	// Record order follows module then command order.
	names := []string{}
	for _, r := range res.Manifest.Records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Get-AzVM", "Stop-AzVM", "New-AzVnet"}, names)

	first := res.Manifest.Records[0]
	assert.Equal(t, "Get", first.Verb)
	assert.Equal(t, "Az.Compute", first.Module)
	assert.Equal(t, "Compute", first.Category)
	assert.True(t, first.HasExamples)

	// Stop-AzVM has no examples.
	assert.False(t, res.Manifest.Records[1].HasExamples)

	// Descriptions are normalized; the trailing annotation is gone.
	assert.Equal(t, "Gets a virtual machine.", res.Descriptions["Get-AzVM"])

	require.Len(t, res.Modules, 2)
	compute := res.Modules[0]
	assert.Equal(t, "Az.Compute", compute.Module)
	assert.Equal(t, "7.1.0", compute.Version)
	assert.Equal(t,
		"Get-AzVM [-ResourceGroupName <String>] [-Name <String>]",
		compute.Cmdlets["Get-AzVM"].Syntax)

	network := res.Modules[1]
	assert.Equal(t, "0.0.0", network.Version)

	assert.Equal(t, 3, res.Stats.Commands)
	assert.Equal(t, 2, res.Stats.Modules)
	assert.Equal(t, 1, res.Stats.SkippedModules)
	assert.Equal(t, 1, res.Stats.Degraded) // Stop-AzVM had no examples
}

// Every command in a ModuleDetail must appear in the manifest with a
// matching module.
func TestRun_ModuleDetailConsistentWithManifest(t *testing.T) {
	src := &fakeSource{version: "14.3.0", modules: testCorpus()}

	res, err := Run(testContext(t), src, Options{})
	require.NoError(t, err)

	byName := map[string]docs.CommandRecord{}
	for _, r := range res.Manifest.Records {
		byName[r.Name] = r
	}

	for _, m := range res.Modules {
		for name := range m.Cmdlets {
			rec, ok := byName[name]
			require.True(t, ok, "cmdlet %s missing from manifest", name)
			assert.Equal(t, m.Module, rec.Module, "module mismatch for %s", name)
		}
	}
}

func TestRun_PerCommandDegradation(t *testing.T) {
	src := &fakeSource{
		version: "1.0.0",
		modules: []docs.RawModule{{
			Name: "Az.Mystery",
			Commands: []docs.RawCommand{
				{Name: "Get-AzThing"}, // everything absent
			},
		}},
	}

	res, err := Run(testContext(t), src, Options{})
	require.NoError(t, err)

	require.Len(t, res.Manifest.Records, 1)
	rec := res.Manifest.Records[0]
	assert.Equal(t, "Get", rec.Verb)
	assert.Equal(t, "Other", rec.Category)
	assert.False(t, rec.HasExamples)

	// No synopsis means no description entry, not an empty one.
	_, ok := res.Descriptions["Get-AzThing"]
	assert.False(t, ok)

	// Absent parameters yield empty syntax.
	assert.Equal(t, "", res.Modules[0].Cmdlets["Get-AzThing"].Syntax)
	assert.Equal(t, 1, res.Stats.Degraded)
}

func TestRun_EmptyCorpusFatal(t *testing.T) {
	tests := []struct {
		name    string
		modules []docs.RawModule
	}{
		{name: "no modules at all", modules: nil},
		{
			name: "modules but no commands",
			modules: []docs.RawModule{
				{Name: "Az.One"},
				{Name: "Az.Two", Commands: []docs.RawCommand{{Name: ""}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{version: "1.0.0", modules: tt.modules}
			_, err := Run(testContext(t), src, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrEmptyCorpus))
		})
	}
}

func TestRun_DuplicateNamesKeepFirst(t *testing.T) {
	src := &fakeSource{
		version: "1.0.0",
		modules: []docs.RawModule{
			{
				Name: "Az.Compute",
				Commands: []docs.RawCommand{
					{Name: "Get-AzVM", Synopsis: "First."},
				},
			},
			{
				Name: "Az.Legacy",
				Commands: []docs.RawCommand{
					{Name: "Get-AzVM", Synopsis: "Second."},
					{Name: "Get-AzLegacyThing", Synopsis: "Kept."},
				},
			},
		},
	}

	res, err := Run(testContext(t), src, Options{})
	require.NoError(t, err)

	require.Len(t, res.Manifest.Records, 2)
	assert.Equal(t, "Az.Compute", res.Manifest.Records[0].Module)
	assert.Equal(t, "First.", res.Descriptions["Get-AzVM"])

	// The duplicate is dropped from the second module's detail too.
	legacy := res.Modules[1]
	_, ok := legacy.Cmdlets["Get-AzVM"]
	assert.False(t, ok)
	_, ok = legacy.Cmdlets["Get-AzLegacyThing"]
	assert.True(t, ok)
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	src := &fakeSource{version: "14.3.0", modules: testCorpus()}

	serial, err := Run(testContext(t), src, Options{Concurrency: 1})
	require.NoError(t, err)
	parallel, err := Run(testContext(t), src, Options{Concurrency: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Manifest, parallel.Manifest)
	assert.Equal(t, serial.Descriptions, parallel.Descriptions)
	assert.Equal(t, serial.Modules, parallel.Modules)
}

func TestRun_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk gone")}

	_, err := Run(testContext(t), src, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading corpus")
}
