package frontmatter

import (
	"strings"
	"testing"
)

// docHeader mirrors the front matter fields cmdlet docs carry.
type docHeader struct {
	Title         string `yaml:"title"`
	ModuleName    string `yaml:"Module Name"`
	ModuleVersion string `yaml:"Module Version"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHdr  docHeader
		wantBody string
	}{
		{
			name: "full header",
			input: "---\n" +
				"title: Get-AzVM\n" +
				"Module Name: Az.Compute\n" +
				"Module Version: 7.1.0\n" +
				"---\n" +
				"## SYNOPSIS\nGets a VM.\n",
			wantHdr: docHeader{
				Title:         "Get-AzVM",
				ModuleName:    "Az.Compute",
				ModuleVersion: "7.1.0",
			},
			wantBody: "## SYNOPSIS\nGets a VM.\n",
		},
		{
			name:     "no front matter",
			input:    "## SYNOPSIS\nPlain doc.\n",
			wantHdr:  docHeader{},
			wantBody: "## SYNOPSIS\nPlain doc.\n",
		},
		{
			name:     "unterminated block treated as body",
			input:    "---\ntitle: Broken\nno closing delimiter",
			wantHdr:  docHeader{},
			wantBody: "---\ntitle: Broken\nno closing delimiter",
		},
		{
			name:     "crlf line endings",
			input:    "---\r\ntitle: Get-AzDisk\r\n---\r\nbody\r\n",
			wantHdr:  docHeader{Title: "Get-AzDisk"},
			wantBody: "body\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hdr docHeader
			body, err := Parse([]byte(tt.input), &hdr)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if hdr != tt.wantHdr {
				t.Errorf("header = %+v, want %+v", hdr, tt.wantHdr)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	var hdr docHeader
	_, err := Parse([]byte("---\n\t: bad\n---\nbody\n"), &hdr)
	if err == nil {
		t.Error("Parse() should fail on invalid YAML")
	}
}

func TestParseHeader(t *testing.T) {
	input := "---\ntitle: New-AzVnet\nModule Name: Az.Network\n---\n" +
		strings.Repeat("body line\n", 100)

	var hdr docHeader
	if err := ParseHeader(strings.NewReader(input), &hdr); err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if hdr.Title != "New-AzVnet" || hdr.ModuleName != "Az.Network" {
		t.Errorf("header = %+v", hdr)
	}
}

func TestParseHeader_NoFrontMatter(t *testing.T) {
	var hdr docHeader
	if err := ParseHeader(strings.NewReader("just text\n"), &hdr); err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if hdr != (docHeader{}) {
		t.Errorf("header should stay zero, got %+v", hdr)
	}
}
