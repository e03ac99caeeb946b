/*
interval.go - Request-scoped interval index over time windows

PURPOSE:
  Answers "which periods contain instant t" in O(log n + k). Built once per
  request per period kind (override, additive, grouping) and discarded with
  the request; never cached or shared.

BOUNDARY SEMANTICS:
  Windows are closed-closed [start, end] on the wall clock. Internally every
  window is stored half-open as [start, end+1us), so a stab at exactly `end`
  still matches. The widening is mechanical: equality is never special-cased
  at query time.

STRUCTURE:
  A static augmented interval tree: entries sorted by start form a balanced
  BST (midpoint split), each node carrying the maximum half-open end of its
  subtree. A stab descends left unconditionally, visits the node, and only
  descends right when t >= node.start; subtrees whose maxEnd <= t are pruned.

  Entries with start > end are excluded at build time (request validation
  rejects such periods before the pipeline runs; the guard here keeps the
  index self-contained).

SEE ALSO:
  - periods.go: The resolvers that query this index
*/
package savings

import (
	"sort"
	"time"
)

// Span is any time window with a closed-closed [start, end] range.
type Span interface {
	Span() (start, end time.Time)
}

// Match is one index hit: the position of the period in the list handed to
// BuildIndex, and the period's start for caller-side tie-breaking.
type Match struct {
	Pos   int
	Start time.Time
}

type intervalNode struct {
	start  int64 // UnixMicro, inclusive
	end    int64 // UnixMicro, exclusive (widened by 1us)
	pos    int
	maxEnd int64
	left   *intervalNode
	right  *intervalNode
}

// Index is an immutable interval index over one request's period list.
type Index struct {
	root *intervalNode
	size int
}

// BuildIndex constructs the index. Periods keep their list position so
// callers can resolve declaration-order tie-breaks.
func BuildIndex[S Span](periods []S) *Index {
	entries := make([]*intervalNode, 0, len(periods))
	for pos, p := range periods {
		start, end := p.Span()
		lo := start.UnixMicro()
		hi := end.UnixMicro() + 1 // inclusive end -> half-open
		if lo < hi {
			entries = append(entries, &intervalNode{start: lo, end: hi, pos: pos})
		}
	}

	sortByStart(entries)
	return &Index{root: buildBalanced(entries), size: len(entries)}
}

// Len returns the number of indexed periods.
func (ix *Index) Len() int { return ix.size }

// QueryAt returns all periods whose widened range contains t, in no
// guaranteed order. Ordering and tie-breaking are resolved by callers.
func (ix *Index) QueryAt(t time.Time) []Match {
	var out []Match
	stab(ix.root, t.UnixMicro(), &out)
	return out
}

func stab(n *intervalNode, t int64, out *[]Match) {
	if n == nil || t >= n.maxEnd {
		return
	}
	stab(n.left, t, out)
	if n.start <= t && t < n.end {
		*out = append(*out, Match{Pos: n.pos, Start: time.UnixMicro(n.start)})
	}
	if t < n.start {
		// Right subtree starts are >= n.start, so none can contain t.
		return
	}
	stab(n.right, t, out)
}

func buildBalanced(sorted []*intervalNode) *intervalNode {
	if len(sorted) == 0 {
		return nil
	}
	mid := len(sorted) / 2
	n := sorted[mid]
	n.left = buildBalanced(sorted[:mid])
	n.right = buildBalanced(sorted[mid+1:])

	n.maxEnd = n.end
	if n.left != nil && n.left.maxEnd > n.maxEnd {
		n.maxEnd = n.left.maxEnd
	}
	if n.right != nil && n.right.maxEnd > n.maxEnd {
		n.maxEnd = n.right.maxEnd
	}
	return n
}

func sortByStart(entries []*intervalNode) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].start < entries[j].start })
}
