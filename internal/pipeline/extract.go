package pipeline

import (
	"regexp"
	"strings"

	"github.com/azindex/azindex/internal/docs"
)

// maxExamples caps how many example snippets are kept per command.
// Raw blocks are capped before empty ones are filtered out, matching
// the shipped artifacts.
const maxExamples = 3

// fallbackLabel is used when a verb or category cannot be resolved.
const fallbackLabel = "Other"

var (
	verbRe = regexp.MustCompile(`^([A-Za-z]+)-`)

	// trailing "[...]" annotations appended by documentation tooling
	trailingBracketRe = regexp.MustCompile(`\s*\[[^\[\]]*\]$`)
)

// Verb extracts the leading alphabetic token before the first hyphen of
// a command name, or "Other" when the name does not match the pattern.
func Verb(name string) string {
	if m := verbRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return fallbackLabel
}

// NormalizeSynopsis collapses the newlines of a raw synopsis into single
// spaces, trims surrounding whitespace, and strips one trailing
// bracketed annotation.
func NormalizeSynopsis(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = trailingBracketRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SynthesizeSyntax renders a displayable invocation string from the
// ordered parameter descriptors of the primary syntax variant. Every
// parameter is bracket-wrapped regardless of its required flag, matching
// the rendering of the existing artifacts. A nil descriptor list means
// the syntax could not be resolved and yields "".
func SynthesizeSyntax(name string, params []docs.Parameter) string {
	if params == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(name)
	for _, p := range params {
		b.WriteString(" [-")
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(" <")
			b.WriteString(p.Type)
			b.WriteString(">")
		}
		b.WriteString("]")
	}
	return b.String()
}

// CaptureExamples keeps the first maxExamples raw blocks, normalizes
// line endings, trims them, and drops any that end up empty. Whitespace
// blocks inside the cap still consume a slot.
func CaptureExamples(raw []string) []string {
	if len(raw) > maxExamples {
		raw = raw[:maxExamples]
	}

	out := make([]string, 0, len(raw))
	for _, block := range raw {
		block = strings.ReplaceAll(block, "\r\n", "\n")
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out = append(out, block)
	}
	return out
}
