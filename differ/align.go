package differ

import (
	"sort"

	"github.com/siZaiMou/evoschema/schema"
)

// matchThreshold is the minimum similarity score for a removed/added pair to
// be considered the same field under a new name or parent. The threshold is
// inclusive: a pair scoring exactly 0.6 is accepted.
const matchThreshold = 0.6

// signature is the derived descriptor used for similarity scoring between a
// removed and an added node. It is computed on demand and never persisted.
type signature struct {
	kind        schema.Kind
	enumPresent bool
	hasItems    bool
	itemKind    schema.Kind
	isObject    bool
	childKeys   []string
	required    []string
}

// buildSignature derives the matching descriptor for one node.
func buildSignature(n *schema.Node) signature {
	sig := signature{
		kind:        n.Kind,
		enumPresent: len(n.Enum) > 0,
		hasItems:    n.Items != nil,
	}
	if n.Items != nil {
		sig.itemKind = n.Items.Kind
	}
	if n.Kind == schema.KindObject {
		sig.isObject = true
		sig.childKeys = n.PropertyNames()
		sort.Strings(sig.childKeys)
		sig.required = append(sig.required, n.Required...)
		sort.Strings(sig.required)
	}
	return sig
}

// similarity scores two signatures in [0,1]. The weighting is a heuristic,
// not a provable metric:
//
//	+0.4  declared kind matches
//	+0.3  Jaccard similarity of child property names (objects only)
//	+0.1  enum presence matches
//	+0.1  items presence matches
//	+0.1  item kinds match (arrays only)
func similarity(a, b signature) float64 {
	s := 0.0
	if a.kind == b.kind {
		s += 0.4
	}
	if a.isObject && b.isObject {
		s += 0.3 * jaccard(a.childKeys, b.childKeys)
	}
	if a.enumPresent == b.enumPresent {
		s += 0.1
	}
	if a.hasItems == b.hasItems {
		s += 0.1
	}
	if a.hasItems && b.hasItems && a.itemKind == b.itemKind {
		s += 0.1
	}
	return s
}

// jaccard computes |a∩b| / |a∪b| over two string sets.
// Two empty sets are considered identical.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}
	union := len(setA)
	inter := 0
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		if seen[s] {
			continue
		}
		seen[s] = true
		if setA[s] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// matchPair is one accepted correspondence between a removed and an added path.
type matchPair struct {
	removed string
	added   string
	score   float64
}

// alignPaths pairs removed paths from the source snapshot with added paths
// from the target snapshot by similarity. Pairs scoring at or above
// matchThreshold are sorted by score descending (ties broken by removed then
// added path, ascending, for determinism) and accepted greedily: a pair is
// skipped when either side was already consumed by a higher-scored pair.
// This is bipartite greedy matching, not a globally optimal assignment; the
// worst case degrades to all removed and added paths staying unmatched,
// which is always a valid result.
func alignPaths(removed, added []string, src, dst schema.FlatIndex) []matchPair {
	sigSrc := make(map[string]signature, len(removed))
	for _, p := range removed {
		sigSrc[p] = buildSignature(src[p])
	}
	sigDst := make(map[string]signature, len(added))
	for _, p := range added {
		sigDst[p] = buildSignature(dst[p])
	}

	var candidates []matchPair
	for _, r := range removed {
		for _, a := range added {
			if s := similarity(sigSrc[r], sigDst[a]); s >= matchThreshold {
				candidates = append(candidates, matchPair{removed: r, added: a, score: s})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].removed != candidates[j].removed {
			return candidates[i].removed < candidates[j].removed
		}
		return candidates[i].added < candidates[j].added
	})

	usedRemoved := make(map[string]bool)
	usedAdded := make(map[string]bool)
	var accepted []matchPair
	for _, c := range candidates {
		if usedRemoved[c.removed] || usedAdded[c.added] {
			continue
		}
		usedRemoved[c.removed] = true
		usedAdded[c.added] = true
		accepted = append(accepted, c)
	}
	return accepted
}
