// Package docs defines the data model shared by the extraction pipeline,
// the artifact store, and the search index: compact command records, the
// eagerly-loaded manifest, lazily-loaded per-module details, and the raw
// help records the pipeline consumes.
package docs

// CommandRecord is one documented cmdlet in the manifest.
//
// JSON field names are kept terse because the manifest carries thousands
// of records and is loaded eagerly by every consumer.
type CommandRecord struct {
	// Name is the unique Verb-Noun identifier, e.g. "Get-AzVM".
	Name string `json:"n"`

	// Verb is the leading token of Name before the first hyphen,
	// or "Other" when Name does not follow the Verb-Noun pattern.
	Verb string `json:"v"`

	// Module is the owning module identifier, e.g. "Az.Compute".
	Module string `json:"m"`

	// Category is the topical label resolved from Module.
	Category string `json:"c"`

	// HasExamples is true when at least one example snippet was extracted.
	HasExamples bool `json:"e"`
}

// Manifest is the top-level artifact: the corpus version plus every
// command record in extraction order. It is the only artifact consumers
// must load eagerly.
type Manifest struct {
	Version string          `json:"v"`
	Records []CommandRecord `json:"d"`
}

// CmdletDetail holds the rich, lazily-loaded content for one cmdlet.
type CmdletDetail struct {
	Syntax   string   `json:"syntax"`
	Examples []string `json:"examples"`
}

// ModuleDetail is the per-module artifact, loaded on demand.
// Every key in Cmdlets also appears in the manifest with a matching Module.
type ModuleDetail struct {
	Module  string                  `json:"module"`
	Version string                  `json:"version"`
	Cmdlets map[string]CmdletDetail `json:"cmdlets"`
}

// Parameter describes one parameter of a cmdlet's primary syntax variant.
type Parameter struct {
	// Name is the parameter name without the leading dash.
	Name string

	// Type is the value type hint, empty for switch parameters.
	Type string

	// Required reports whether the source grammar marked the parameter
	// as mandatory.
	Required bool
}

// RawCommand is one loosely-structured help record as delivered by a
// documentation source. Any field except Name may be absent; absent
// fields are zero values and degrade to empty output, never errors.
type RawCommand struct {
	Name       string
	Synopsis   string
	Parameters []Parameter
	Examples   []string
}

// RawModule groups the raw help records of one module.
type RawModule struct {
	// Name is the module identifier, e.g. "Az.Network".
	Name string

	// Version is the module version, "0.0.0" when unresolvable.
	Version string

	Commands []RawCommand
}
