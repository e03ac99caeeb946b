/*
periods.go - Override, additive, and grouping-window resolution

PURPOSE:
  The three period-based pipeline stages, in their mandatory order:

    ApplyOverrides  remanent = Fixed of the single winning override window
    ApplyAdditives  remanent += sum of ALL matching extra values
    TagWindows      drop transactions outside every grouping window (filter)
    SumByWindow     sum remanents per grouping window (group, never drop)

  Override tie-break: among matches, the window with the latest start wins;
  on an exact start tie, the window declared earliest in the input list wins.
  A fixed value of zero is a real override, distinguished from "no match" by
  match count, never by value.

  ApplyOverrides and ApplyAdditives mutate the transactions IN PLACE and
  return the same slice, so later stages observe earlier adjustments.
  TagWindows and SumByWindow are read-only over remanents.

SEE ALSO:
  - interval.go: The index these stages query
  - pipeline.go: Stage composition and per-request index construction
*/
package savings

import "github.com/shopspring/decimal"

// ApplyOverrides replaces the remanent of every transaction matching at
// least one override period. The index must have been built from periods.
// Returns the input slice, mutated in place.
func ApplyOverrides(txns []*Transaction, periods []OverridePeriod, ix *Index) []*Transaction {
	for _, txn := range txns {
		matches := ix.QueryAt(txn.Date)
		if len(matches) == 0 {
			continue
		}

		winner := matches[0]
		for _, m := range matches[1:] {
			if m.Start.After(winner.Start) || (m.Start.Equal(winner.Start) && m.Pos < winner.Pos) {
				winner = m
			}
		}
		txn.Remanent = periods[winner.Pos].Fixed
	}
	return txns
}

// ApplyAdditives adds the sum of all matching extra values to each
// transaction's current remanent (which may already be overridden).
// Returns the input slice, mutated in place.
func ApplyAdditives(txns []*Transaction, periods []AdditivePeriod, ix *Index) []*Transaction {
	for _, txn := range txns {
		matches := ix.QueryAt(txn.Date)
		if len(matches) == 0 {
			continue
		}

		extra := decimal.Zero
		for _, m := range matches {
			extra = extra.Add(periods[m.Pos].Extra)
		}
		txn.Remanent = txn.Remanent.Add(extra)
	}
	return txns
}

// TagWindows keeps only transactions falling inside at least one grouping
// window, setting InWindow on survivors. Relative order is preserved and a
// matching transaction is kept exactly once, however many windows it hits.
// An empty window list means nothing qualifies: the result is empty.
func TagWindows(txns []*Transaction, windows []GroupingWindow) []*Transaction {
	if len(windows) == 0 {
		return []*Transaction{}
	}

	ix := BuildIndex(windows)
	kept := make([]*Transaction, 0, len(txns))
	for _, txn := range txns {
		if len(ix.QueryAt(txn.Date)) > 0 {
			txn.InWindow = true
			kept = append(kept, txn)
		}
	}
	return kept
}

// SumByWindow produces one GroupedSum per input window, in input order
// (windows may overlap and need not be sorted). A transaction contributes
// to every window containing its date; none is ever dropped from totals
// computed elsewhere.
func SumByWindow(txns []*Transaction, windows []GroupingWindow) []GroupedSum {
	sums := make([]GroupedSum, len(windows))
	for i, w := range windows {
		sums[i] = GroupedSum{Start: w.Start, End: w.End, Total: decimal.Zero}
	}
	if len(windows) == 0 || len(txns) == 0 {
		return sums
	}

	ix := BuildIndex(windows)
	for _, txn := range txns {
		for _, m := range ix.QueryAt(txn.Date) {
			sums[m.Pos].Total = sums[m.Pos].Total.Add(txn.Remanent)
		}
	}
	return sums
}
