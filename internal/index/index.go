// Package index answers interactive queries over the command manifest:
// fuzzy text search, facet filtering, sorting, and fixed-size pagination,
// all in memory and without re-scoring the corpus per page.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/azindex/azindex/internal/docs"
)

// PageSize is how many records one result chunk carries.
const PageSize = 50

// SortKey selects the result ordering.
type SortKey string

// Sort keys. The zero value orders by match relevance.
const (
	SortRelevance SortKey = ""
	SortName      SortKey = "name"
	SortModule    SortKey = "module"
	SortVerb      SortKey = "verb"
	SortCategory  SortKey = "category"
)

// ValidSortKey reports whether s names a supported ordering.
func ValidSortKey(s SortKey) bool {
	switch s {
	case SortRelevance, SortName, SortModule, SortVerb, SortCategory:
		return true
	}
	return false
}

// Filters constrains results per facet. Facets combine with AND; the
// values within one facet combine with OR. An empty slice leaves that
// facet unconstrained.
type Filters struct {
	Modules    []string
	Categories []string
	Verbs      []string
}

// Query is one search request.
type Query struct {
	// Text is fuzzy-matched against name, module, and description.
	// Empty text matches every record.
	Text string

	Filters Filters

	// Sort orders results; SortRelevance uses match quality.
	Sort SortKey

	// Descending flips the Sort order. Ties always break by name
	// ascending.
	Descending bool

	// Page selects the zero-based result chunk of PageSize records.
	Page int
}

// Page is one materialized chunk of a query's result set.
type Page struct {
	Records []docs.CommandRecord

	// Total is the match count across the whole result set.
	Total int

	// Page echoes the requested chunk number.
	Page int
}

// state is one immutable snapshot of the derived lookup structures.
// Reindex builds a fresh state and swaps it in whole, so queries observe
// either the old or the new snapshot, never a partial one.
type state struct {
	keys       []string   // lowercase search key per record position
	keyTokens  [][]string // splitKey(keys[i])
	byModule   map[string][]int
	byCategory map[string][]int
	byVerb     map[string][]int
}

// Index is the in-memory search index over one manifest snapshot.
type Index struct {
	mu           sync.Mutex
	records      []docs.CommandRecord
	descriptions map[string]string
	st           *state

	// last computed ordering, keyed by everything but the page number
	cacheSig   string
	cacheOrder []int
}

// New builds an index over the manifest's records and indexes them
// immediately. Descriptions can be merged in later via SetDescriptions.
func New(m *docs.Manifest) *Index {
	ix := &Index{records: m.Records}
	ix.Reindex()
	return ix
}

// SetDescriptions stores the description lookup and rebuilds the index
// so search keys include the new text. Safe to call while queries are
// running; they see the pre- or post-rebuild snapshot.
func (ix *Index) SetDescriptions(d map[string]string) {
	ix.mu.Lock()
	ix.descriptions = d
	ix.mu.Unlock()
	ix.Reindex()
}

// Reindex rebuilds all derived lookup structures from the current
// records and descriptions. It is idempotent.
func (ix *Index) Reindex() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	st := &state{
		keys:       make([]string, len(ix.records)),
		keyTokens:  make([][]string, len(ix.records)),
		byModule:   make(map[string][]int),
		byCategory: make(map[string][]int),
		byVerb:     make(map[string][]int),
	}

	for i, rec := range ix.records {
		key := rec.Name + " " + rec.Module
		if d := ix.descriptions[rec.Name]; d != "" {
			key += " " + d
		}
		key = strings.ToLower(key)
		st.keys[i] = key
		st.keyTokens[i] = splitKey(key)

		st.byModule[rec.Module] = append(st.byModule[rec.Module], i)
		st.byCategory[rec.Category] = append(st.byCategory[rec.Category], i)
		st.byVerb[rec.Verb] = append(st.byVerb[rec.Verb], i)
	}

	ix.st = st
	ix.cacheSig = ""
	ix.cacheOrder = nil
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.records)
}

// Modules returns each module present in the index with its record count.
func (ix *Index) Modules() map[string]int {
	return ix.facetCounts(func(s *state) map[string][]int { return s.byModule })
}

// Categories returns each category with its record count.
func (ix *Index) Categories() map[string]int {
	return ix.facetCounts(func(s *state) map[string][]int { return s.byCategory })
}

// Verbs returns each verb with its record count.
func (ix *Index) Verbs() map[string]int {
	return ix.facetCounts(func(s *state) map[string][]int { return s.byVerb })
}

func (ix *Index) facetCounts(pick func(*state) map[string][]int) map[string]int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	out := make(map[string]int)
	for v, positions := range pick(ix.st) {
		out[v] = len(positions)
	}
	return out
}

// Search answers a query with one result chunk plus the total match
// count. A query matching nothing returns an empty page with Total 0.
// The matched, sorted ordering is cached per (text, filters, sort), so
// requesting successive chunks of the same query costs O(PageSize).
func (ix *Index) Search(q Query) Page {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	sig := q.signature()
	order := ix.cacheOrder
	if ix.cacheSig != sig {
		order = ix.computeOrder(q)
		ix.cacheSig = sig
		ix.cacheOrder = order
	}

	page := q.Page
	if page < 0 {
		page = 0
	}
	start := page * PageSize
	end := start + PageSize
	if start > len(order) {
		start = len(order)
	}
	if end > len(order) {
		end = len(order)
	}

	out := Page{Total: len(order), Page: page}
	out.Records = make([]docs.CommandRecord, 0, end-start)
	for _, pos := range order[start:end] {
		out.Records = append(out.Records, ix.records[pos])
	}
	return out
}

// computeOrder runs the match, score, and sort phases for a query and
// returns record positions in result order. Caller holds the lock.
func (ix *Index) computeOrder(q Query) []int {
	st := ix.st
	allowed := ix.allowedPositions(q.Filters)
	tokens := tokenize(q.Text)

	type scored struct {
		pos   int
		score int
	}
	matches := make([]scored, 0, len(ix.records))
	for pos := range ix.records {
		if allowed != nil && !allowed[pos] {
			continue
		}
		score := 0
		if len(tokens) > 0 {
			s, ok := matchScore(st.keys[pos], st.keyTokens[pos], tokens)
			if !ok {
				continue
			}
			score = s
		}
		matches = append(matches, scored{pos: pos, score: score})
	}

	less := ix.lessFunc(q)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if q.Sort == SortRelevance && a.score != b.score {
			return a.score > b.score
		}
		return less(a.pos, b.pos)
	})

	order := make([]int, len(matches))
	for i, m := range matches {
		order[i] = m.pos
	}
	return order
}

// allowedPositions intersects the facet constraints into a position set,
// or returns nil when no facet is constrained.
func (ix *Index) allowedPositions(f Filters) map[int]bool {
	st := ix.st
	var allowed map[int]bool

	apply := func(values []string, lookup map[string][]int) {
		if len(values) == 0 {
			return
		}
		union := make(map[int]bool)
		for _, v := range values {
			for _, pos := range lookup[v] {
				union[pos] = true
			}
		}
		if allowed == nil {
			allowed = union
			return
		}
		for pos := range allowed {
			if !union[pos] {
				delete(allowed, pos)
			}
		}
	}

	apply(f.Modules, st.byModule)
	apply(f.Categories, st.byCategory)
	apply(f.Verbs, st.byVerb)
	return allowed
}

// lessFunc returns the tie-broken comparison for the query's sort key.
// Ties always break by name ascending for determinism.
func (ix *Index) lessFunc(q Query) func(a, b int) bool {
	field := func(pos int) string {
		rec := ix.records[pos]
		switch q.Sort {
		case SortModule:
			return rec.Module
		case SortVerb:
			return rec.Verb
		case SortCategory:
			return rec.Category
		default:
			return rec.Name
		}
	}

	return func(a, b int) bool {
		fa := strings.ToLower(field(a))
		fb := strings.ToLower(field(b))
		if fa != fb {
			if q.Descending {
				return fa > fb
			}
			return fa < fb
		}
		return strings.ToLower(ix.records[a].Name) < strings.ToLower(ix.records[b].Name)
	}
}

// signature identifies a query's result ordering: everything except the
// page number.
func (q Query) signature() string {
	canon := func(vals []string) string {
		c := make([]string, len(vals))
		copy(c, vals)
		sort.Strings(c)
		return strings.Join(c, ",")
	}

	dir := "asc"
	if q.Descending {
		dir = "desc"
	}
	return strings.Join([]string{
		strings.ToLower(q.Text),
		canon(q.Filters.Modules),
		canon(q.Filters.Categories),
		canon(q.Filters.Verbs),
		string(q.Sort),
		dir,
	}, "\x00")
}
