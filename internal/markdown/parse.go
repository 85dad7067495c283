package markdown

import (
	"regexp"
	"strings"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/pkg/frontmatter"
)

// matter holds the front matter fields cmdlet documentation carries.
type matter struct {
	Title         string `yaml:"title"`
	ModuleName    string `yaml:"Module Name"`
	ModuleVersion string `yaml:"Module Version"`
}

// fileDoc is the parse result of one markdown file. Index files and
// files without a recognizable cmdlet name still surface their front
// matter so the module version can be resolved from them.
type fileDoc struct {
	Command       docs.RawCommand
	IsCmdlet      bool
	ModuleName    string
	ModuleVersion string
}

var (
	cmdletNameRe = regexp.MustCompile(`^[A-Z][a-z]+-Az`)
	indexFileRe  = regexp.MustCompile(`^Az\.[A-Za-z]+$`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	emphasisRe   = regexp.MustCompile("[*_`]")

	synopsisRe = sectionRe("SYNOPSIS")
	syntaxRe   = sectionRe("SYNTAX")
	examplesRe = sectionRe("EXAMPLES")

	fenceRe = regexp.MustCompile("(?is)```(?:powershell|ps1|posh)?\\s*?\n(.*?)```")
)

func sectionRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)## ` + name + `\s*?\n(.*?)(?:\n## |\z)`)
}

// parseDoc parses one markdown file from the module directory
// moduleDir. A nil error with IsCmdlet false means the file is a
// module index or otherwise not a cmdlet page.
func parseDoc(filename, moduleDir string, content []byte) (fileDoc, error) {
	var fm matter
	body, err := frontmatter.Parse(content, &fm)
	if err != nil {
		return fileDoc{}, errors.Wrap(err, "front matter")
	}

	doc := fileDoc{ModuleName: fm.ModuleName, ModuleVersion: fm.ModuleVersion}

	stem := strings.TrimSuffix(filename, ".md")
	if indexFileRe.MatchString(stem) {
		return doc, nil
	}

	name := fm.Title
	if name == "" {
		name = stem
	}
	if !cmdletNameRe.MatchString(name) {
		return doc, nil
	}

	module := fm.ModuleName
	if module == "" {
		module = moduleDir
	}
	if !strings.HasPrefix(module, "Az.") {
		return doc, nil
	}

	text := string(body)
	doc.Command = docs.RawCommand{
		Name:       name,
		Synopsis:   synopsisLine(text),
		Parameters: syntaxParams(text),
		Examples:   exampleBlocks(text),
	}
	doc.IsCmdlet = true
	return doc, nil
}

// synopsisLine returns the first line of the SYNOPSIS section with
// markdown links and emphasis stripped.
func synopsisLine(body string) string {
	sec := section(body, synopsisRe)
	if sec == "" {
		return ""
	}
	line, _, _ := strings.Cut(sec, "\n")
	line = linkRe.ReplaceAllString(line, "$1")
	line = emphasisRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// syntaxParams tokenizes the first fenced code block of the SYNTAX
// section. It returns nil when the section holds no usable block, and
// an empty non-nil slice when the block names only the cmdlet itself.
func syntaxParams(body string) []docs.Parameter {
	sec := section(body, syntaxRe)
	m := fenceRe.FindStringSubmatch(sec)
	if m == nil {
		return nil
	}
	block := stripComments(m[1])
	if block == "" {
		return nil
	}
	return parseSyntaxTokens(block)
}

// exampleBlocks returns every fenced code block of the EXAMPLES section
// with comment lines removed. Blocks that reduce to nothing stay in the
// slice so downstream capping sees them in position.
func exampleBlocks(body string) []string {
	sec := section(body, examplesRe)
	var blocks []string
	for _, m := range fenceRe.FindAllStringSubmatch(sec, -1) {
		blocks = append(blocks, stripComments(m[1]))
	}
	return blocks
}

func section(body string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func stripComments(block string) string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// parseSyntaxTokens scans a syntax grammar line such as
//
//	Get-AzVM [[-Name] <String>] [-Status] -Location <String>
//
// into ordered parameter descriptors. Bracket depth at the dash decides
// Required; a following <...> token supplies the type hint. The leading
// cmdlet name and [<CommonParameters>] carry no dash and fall through.
func parseSyntaxTokens(block string) []docs.Parameter {
	text := strings.Join(strings.Fields(block), " ")
	params := []docs.Parameter{}

	depth := 0
	for i := 0; i < len(text); {
		switch text[i] {
		case '[':
			depth++
			i++
		case ']':
			if depth > 0 {
				depth--
			}
			i++
		case '-':
			if i > 0 && text[i-1] != ' ' && text[i-1] != '[' {
				i++
				continue
			}
			start := i + 1
			j := start
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			if j == start {
				i++
				continue
			}
			p := docs.Parameter{Name: text[start:j], Required: depth == 0}

			// A positional parameter closes its bracket before the
			// type token, so the scan crosses closing brackets here.
			k := j
			for k < len(text) && (text[k] == ' ' || text[k] == ']') {
				if text[k] == ']' && depth > 0 {
					depth--
				}
				k++
			}
			if k < len(text) && text[k] == '<' {
				if end := strings.IndexByte(text[k:], '>'); end > 0 {
					p.Type = text[k+1 : k+end]
					k += end + 1
				}
			}
			params = append(params, p)
			i = k
		default:
			i++
		}
	}
	return params
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
