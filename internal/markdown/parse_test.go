package markdown

import (
	"reflect"
	"testing"

	"github.com/azindex/azindex/internal/docs"
)

func TestParseSyntaxTokens(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []docs.Parameter
	}{
		{
			name:  "optional parameters and switch",
			block: "Get-AzVM [-ResourceGroupName <String>] [-Name <String>] [-Status]",
			want: []docs.Parameter{
				{Name: "ResourceGroupName", Type: "String"},
				{Name: "Name", Type: "String"},
				{Name: "Status"},
			},
		},
		{
			name:  "required parameter",
			block: "New-AzVM -Location <String> [-Name <String>]",
			want: []docs.Parameter{
				{Name: "Location", Type: "String", Required: true},
				{Name: "Name", Type: "String"},
			},
		},
		{
			name:  "positional parameter keeps its type",
			block: "Get-AzVM [[-ResourceGroupName] <String>] [[-Name] <String>]",
			want: []docs.Parameter{
				{Name: "ResourceGroupName", Type: "String"},
				{Name: "Name", Type: "String"},
			},
		},
		{
			name:  "common parameters ignored",
			block: "Get-AzVM [<CommonParameters>]",
			want:  []docs.Parameter{},
		},
		{
			name:  "line continuation",
			block: "Get-AzVM [-Name <String>]\n [-Status] [<CommonParameters>]",
			want: []docs.Parameter{
				{Name: "Name", Type: "String"},
				{Name: "Status"},
			},
		},
		{
			name:  "array type hint",
			block: "Set-AzVM -Tag <Hashtable[]>",
			want: []docs.Parameter{
				{Name: "Tag", Type: "Hashtable[]", Required: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSyntaxTokens(tt.block)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSyntaxTokens(%q) = %+v, want %+v", tt.block, got, tt.want)
			}
		})
	}
}

func TestSynopsisLine(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "first line only",
			body: "## SYNOPSIS\nPowers off a virtual machine.\nSecond line is dropped.\n\n## SYNTAX\n",
			want: "Powers off a virtual machine.",
		},
		{
			name: "markdown link unwrapped",
			body: "## SYNOPSIS\nSee [Get-AzVM](https://example.invalid/get-azvm) for details.\n",
			want: "See Get-AzVM for details.",
		},
		{
			name: "emphasis stripped",
			body: "## SYNOPSIS\nGets the *current* `context`.\n",
			want: "Gets the current context.",
		},
		{
			name: "lowercase heading",
			body: "## Synopsis\nGets a thing.\n",
			want: "Gets a thing.",
		},
		{
			name: "missing section",
			body: "## DESCRIPTION\nNothing here.\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := synopsisLine(tt.body); got != tt.want {
				t.Errorf("synopsisLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyntaxParams_Absence(t *testing.T) {
	if got := syntaxParams("## DESCRIPTION\ntext\n"); got != nil {
		t.Errorf("no SYNTAX section should yield nil, got %+v", got)
	}
	if got := syntaxParams("## SYNTAX\nprose without a code block\n"); got != nil {
		t.Errorf("SYNTAX without a fence should yield nil, got %+v", got)
	}

	body := "## SYNTAX\n\n```\nGet-AzContext\n```\n"
	got := syntaxParams(body)
	if got == nil || len(got) != 0 {
		t.Errorf("bare cmdlet syntax should yield an empty non-nil slice, got %+v", got)
	}
}

func TestExampleBlocks(t *testing.T) {
	body := "## EXAMPLES\n\n" +
		"### Example 1\n```powershell\n# list everything\nGet-AzVM\n```\n\n" +
		"### Example 2\n```\n# only a comment\n```\n\n" +
		"### Example 3\n```ps1\nGet-AzVM -Status\n```\n"

	got := exampleBlocks(body)
	want := []string{"Get-AzVM", "", "Get-AzVM -Status"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exampleBlocks() = %q, want %q", got, want)
	}
}

func TestParseDoc(t *testing.T) {
	t.Run("index file surfaces version only", func(t *testing.T) {
		content := []byte("---\nModule Name: Az.Compute\nModule Version: 7.1.0\n---\n\n# Az.Compute Module\n")
		doc, err := parseDoc("Az.Compute.md", "Az.Compute", content)
		if err != nil {
			t.Fatalf("parseDoc: %v", err)
		}
		if doc.IsCmdlet {
			t.Error("index file should not be a cmdlet")
		}
		if doc.ModuleName != "Az.Compute" || doc.ModuleVersion != "7.1.0" {
			t.Errorf("front matter not surfaced: %+v", doc)
		}
	})

	t.Run("title falls back to filename", func(t *testing.T) {
		content := []byte("## SYNOPSIS\nGets a VM.\n")
		doc, err := parseDoc("Get-AzVM.md", "Az.Compute", content)
		if err != nil {
			t.Fatalf("parseDoc: %v", err)
		}
		if !doc.IsCmdlet || doc.Command.Name != "Get-AzVM" {
			t.Errorf("expected cmdlet Get-AzVM, got %+v", doc)
		}
		if doc.Command.Synopsis != "Gets a VM." {
			t.Errorf("synopsis = %q", doc.Command.Synopsis)
		}
	})

	t.Run("unrecognizable name skipped", func(t *testing.T) {
		content := []byte("## SYNOPSIS\nNot a cmdlet page.\n")
		doc, err := parseDoc("overview.md", "Az.Compute", content)
		if err != nil {
			t.Fatalf("parseDoc: %v", err)
		}
		if doc.IsCmdlet {
			t.Error("non Verb-Az name should be skipped")
		}
	})

	t.Run("module outside Az namespace skipped", func(t *testing.T) {
		content := []byte("---\ntitle: Get-AzVM\nModule Name: AzureRM.Compute\n---\n## SYNOPSIS\nLegacy page.\n")
		doc, err := parseDoc("Get-AzVM.md", "AzureRM.Compute", content)
		if err != nil {
			t.Fatalf("parseDoc: %v", err)
		}
		if doc.IsCmdlet {
			t.Error("non Az.* module should be skipped")
		}
	})

	t.Run("invalid front matter is an error", func(t *testing.T) {
		content := []byte("---\ntitle: [unclosed\n---\n## SYNOPSIS\nx\n")
		if _, err := parseDoc("Get-AzVM.md", "Az.Compute", content); err == nil {
			t.Error("expected an error for invalid front matter")
		}
	})
}
