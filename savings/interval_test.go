package savings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/savings-engine/savings"
)

// =============================================================================
// BOUNDARY TESTS - closed-closed windows via half-open widening
// =============================================================================

func TestIndex_InclusiveEndpoints(t *testing.T) {
	// GIVEN: One window [start, end]
	ix := savings.BuildIndex([]savings.GroupingWindow{
		window(t, "2023-10-01 08:00:00", "2023-12-31 19:59:59"),
	})

	// THEN: Both endpoints match; one second either side does not
	assert.Len(t, ix.QueryAt(dt(t, "2023-10-01 08:00:00")), 1, "start is inclusive")
	assert.Len(t, ix.QueryAt(dt(t, "2023-12-31 19:59:59")), 1, "end is inclusive")
	assert.Empty(t, ix.QueryAt(dt(t, "2023-10-01 07:59:59")))
	assert.Empty(t, ix.QueryAt(dt(t, "2023-12-31 20:00:00")))
}

func TestIndex_SingleInstantWindow(t *testing.T) {
	// start == end is a valid one-instant window after widening
	ix := savings.BuildIndex([]savings.GroupingWindow{
		window(t, "2023-06-15 12:00:00", "2023-06-15 12:00:00"),
	})

	require.Equal(t, 1, ix.Len())
	assert.Len(t, ix.QueryAt(dt(t, "2023-06-15 12:00:00")), 1)
	assert.Empty(t, ix.QueryAt(dt(t, "2023-06-15 12:00:01")))
}

func TestIndex_ReversedWindowExcluded(t *testing.T) {
	ix := savings.BuildIndex([]savings.GroupingWindow{
		{Start: dt(t, "2023-12-31 00:00:00"), End: dt(t, "2023-01-01 00:00:00")},
	})
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.QueryAt(dt(t, "2023-06-01 00:00:00")))
}

// =============================================================================
// MULTI-MATCH TESTS
// =============================================================================

func TestIndex_AllOverlappingMatchesReturned(t *testing.T) {
	// GIVEN: Three nested/overlapping windows and one disjoint one
	windows := []savings.GroupingWindow{
		window(t, "2023-01-01 00:00:00", "2023-12-31 23:59:59"),
		window(t, "2023-06-01 00:00:00", "2023-06-30 23:59:59"),
		window(t, "2023-06-10 00:00:00", "2023-06-20 23:59:59"),
		window(t, "2024-01-01 00:00:00", "2024-12-31 23:59:59"),
	}
	ix := savings.BuildIndex(windows)

	// WHEN: Stabbing inside all three overlapping windows
	matches := ix.QueryAt(dt(t, "2023-06-15 12:00:00"))

	// THEN: Exactly those three come back, with their list positions
	require.Len(t, matches, 3)
	positions := map[int]bool{}
	for _, m := range matches {
		positions[m.Pos] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, positions)
}

func TestIndex_MatchCarriesPeriodStart(t *testing.T) {
	ix := savings.BuildIndex([]savings.OverridePeriod{
		override(t, 5, "2023-03-01 00:00:00", "2023-03-31 23:59:59"),
	})

	matches := ix.QueryAt(dt(t, "2023-03-15 00:00:00"))
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Start.Equal(dt(t, "2023-03-01 00:00:00")))
}

func TestIndex_ManyWindowsStab(t *testing.T) {
	// A larger build exercising the balanced structure: 200 consecutive
	// one-day windows, stab in the middle.
	windows := make([]savings.GroupingWindow, 200)
	day := dt(t, "2023-01-01 00:00:00")
	for i := range windows {
		start := day.Add(time.Duration(i) * 24 * time.Hour)
		windows[i] = savings.GroupingWindow{Start: start, End: start.Add(24*time.Hour - time.Second)}
	}
	ix := savings.BuildIndex(windows)
	require.Equal(t, 200, ix.Len())

	matches := ix.QueryAt(dt(t, "2023-04-11 12:00:00")) // day index 100
	require.Len(t, matches, 1)
	assert.Equal(t, 100, matches[0].Pos)
}

func TestIndex_Empty(t *testing.T) {
	ix := savings.BuildIndex([]savings.GroupingWindow{})
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.QueryAt(time.Now()))
}
