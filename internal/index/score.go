package index

import "strings"

// Match quality tiers per query token. A record's score is the sum over
// its tokens; ordering only matters relative to other records of the
// same query.
const (
	scoreWholeToken  = 100
	scoreTokenPrefix = 75
	scoreSubstring   = 50
	scoreSubsequence = 10
)

// tokenize lowercases and splits query text on whitespace.
func tokenize(q string) []string {
	return strings.Fields(strings.ToLower(q))
}

// splitKey breaks a search key into alphanumeric runs, so "get-azvm
// az.compute" yields ["get", "azvm", "az", "compute"].
func splitKey(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// matchScore reports whether every query token matches the search key,
// and the summed match quality when it does. Keys and tokens must
// already be lowercase.
func matchScore(key string, keyTokens []string, tokens []string) (int, bool) {
	total := 0
	for _, tok := range tokens {
		s := scoreToken(key, keyTokens, tok)
		if s == 0 {
			return 0, false
		}
		total += s
	}
	return total, true
}

// scoreToken scores one query token against the key: whole-token and
// token-prefix matches rank above plain substring matches, which rank
// above scattered subsequence matches.
func scoreToken(key string, keyTokens []string, tok string) int {
	best := 0
	for _, kt := range keyTokens {
		switch {
		case kt == tok:
			return scoreWholeToken
		case strings.HasPrefix(kt, tok):
			best = scoreTokenPrefix
		}
	}
	if best > 0 {
		return best
	}
	if strings.Contains(key, tok) {
		return scoreSubstring
	}
	if isSubsequence(key, tok) {
		return scoreSubsequence
	}
	return 0
}

// isSubsequence reports whether every byte of tok appears in key in
// order, not necessarily contiguously.
func isSubsequence(key, tok string) bool {
	if tok == "" {
		return true
	}
	i := 0
	for j := 0; j < len(key); j++ {
		if key[j] == tok[i] {
			i++
			if i == len(tok) {
				return true
			}
		}
	}
	return false
}
