// Package frontmatter parses the YAML front matter block that cmdlet
// documentation files carry between "---" delimiters.
package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Parse extracts YAML front matter from content into matter and returns
// the remaining body. Content without a front matter block is returned
// whole as the body with matter left untouched; front matter is optional
// in documentation trees.
func Parse(content []byte, matter any) (body []byte, err error) {
	block, rest, ok := split(content)
	if !ok {
		return content, nil
	}
	if err := yaml.Unmarshal(block, matter); err != nil {
		return nil, err
	}
	return rest, nil
}

// ParseHeader decodes only the front matter from r into matter, reading
// no further than the closing delimiter. It leaves matter untouched and
// returns nil when the reader does not start with a front matter block.
func ParseHeader(r io.Reader, matter any) error {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return sc.Err()
	}
	if strings.TrimSpace(sc.Text()) != delimiter {
		return nil
	}

	var block bytes.Buffer
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == delimiter {
			return yaml.Unmarshal(block.Bytes(), matter)
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
	return sc.Err()
}

// split separates content into the front matter block and the body.
// ok is false when content does not open with a delimiter line or the
// closing delimiter is missing.
func split(content []byte) (block, body []byte, ok bool) {
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != delimiter {
		return nil, nil, false
	}

	var blockBuf bytes.Buffer
	offset := advance(content, 0) // past the opening delimiter line
	for sc.Scan() {
		line := sc.Text()
		offset = advance(content, offset)
		if strings.TrimSpace(line) == delimiter {
			return blockBuf.Bytes(), content[offset:], true
		}
		blockBuf.WriteString(line)
		blockBuf.WriteByte('\n')
	}
	return nil, nil, false
}

// advance returns the offset just past the line starting at offset,
// tolerating both LF and CRLF endings.
func advance(content []byte, offset int) int {
	i := bytes.IndexByte(content[offset:], '\n')
	if i < 0 {
		return len(content)
	}
	return offset + i + 1
}
