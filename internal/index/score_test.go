package index

import "testing"

func TestScoreToken(t *testing.T) {
	key := "get-azvm az.compute gets a virtual machine"
	keyTokens := splitKey(key)

	tests := []struct {
		tok  string
		want int
	}{
		{"get", scoreWholeToken},
		{"compute", scoreWholeToken},
		{"comp", scoreTokenPrefix},
		{"vm", scoreSubstring},    // inside the azvm token
		{"gvm", scoreSubsequence}, // scattered
		{"xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			if got := scoreToken(key, keyTokens, tt.tok); got != tt.want {
				t.Errorf("scoreToken(%q) = %d, want %d", tt.tok, got, tt.want)
			}
		})
	}
}

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		key, tok string
		want     bool
	}{
		{"new-azvnet", "vn", true},
		{"new-azvnet", "azt", true},
		{"new-azvnet", "tn", false}, // order matters
		{"anything", "", true},
		{"", "a", false},
	}

	for _, tt := range tests {
		if got := isSubsequence(tt.key, tt.tok); got != tt.want {
			t.Errorf("isSubsequence(%q, %q) = %v, want %v", tt.key, tt.tok, got, tt.want)
		}
	}
}

func TestSplitKey(t *testing.T) {
	got := splitKey("get-azvm az.compute")
	want := []string{"get", "azvm", "az", "compute"}
	if len(got) != len(want) {
		t.Fatalf("splitKey() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
