package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRoute_EmptyCandidates(t *testing.T) {
	assert.Nil(t, SelectRoute(nil, RouteOptimal))
	assert.Nil(t, SelectRoute([]CandidateRoute{}, RouteFast))
}

func TestSelectRoute_SingleCandidate(t *testing.T) {
	candidates := []CandidateRoute{
		{DistanceMeters: 100000, DurationSeconds: 1000, Summary: "Ruta 5"},
	}

	selected := SelectRoute(candidates, RouteEconomic)
	require.NotNil(t, selected)
	assert.Equal(t, "Ruta 5", selected.Summary)
	// Economic applies a 1.25 duration correction to the winner.
	assert.Equal(t, 1250, selected.DurationSeconds)
	// The input slice is left untouched.
	assert.Equal(t, 1000, candidates[0].DurationSeconds)
}

func TestSelectRoute_LowestScoreWins(t *testing.T) {
	short := CandidateRoute{DistanceMeters: 50000, DurationSeconds: 4000, Summary: "short"}
	long := CandidateRoute{DistanceMeters: 52000, DurationSeconds: 3000, Summary: "long"}

	// Economic weighs distance 0.7 vs duration 0.3, so the shorter route wins.
	selected := SelectRoute([]CandidateRoute{long, short}, RouteEconomic)
	require.NotNil(t, selected)
	assert.Equal(t, "short", selected.Summary)

	// Fast weighs duration 0.8, so the quicker route wins.
	selected = SelectRoute([]CandidateRoute{short, long}, RouteFast)
	require.NotNil(t, selected)
	assert.Equal(t, "long", selected.Summary)
}

func TestSelectRoute_TieKeepsFirstSeen(t *testing.T) {
	a := CandidateRoute{DistanceMeters: 60000, DurationSeconds: 3600, Summary: "first"}
	b := CandidateRoute{DistanceMeters: 60000, DurationSeconds: 3600, Summary: "second"}

	selected := SelectRoute([]CandidateRoute{a, b}, RouteOptimal)
	require.NotNil(t, selected)
	assert.Equal(t, "first", selected.Summary)
}

func TestSelectRoute_PrefersTrafficAwareDuration(t *testing.T) {
	// Free-flow durations would favor "a", but traffic-aware durations favor "b".
	a := CandidateRoute{DistanceMeters: 60000, DurationSeconds: 3000, DurationInTrafficS: 5000, Summary: "a"}
	b := CandidateRoute{DistanceMeters: 60000, DurationSeconds: 3500, DurationInTrafficS: 4000, Summary: "b"}

	selected := SelectRoute([]CandidateRoute{a, b}, RouteFast)
	require.NotNil(t, selected)
	assert.Equal(t, "b", selected.Summary)
}

func TestSelectRoute_DurationCorrections(t *testing.T) {
	tests := []struct {
		routeType RouteType
		expected  int
	}{
		{RouteOptimal, 1100},
		{RouteEconomic, 1250},
		{RouteFast, 900},
		{RouteType("unknown"), 1000},
	}

	for _, tt := range tests {
		selected := SelectRoute([]CandidateRoute{{DistanceMeters: 10000, DurationSeconds: 1000}}, tt.routeType)
		require.NotNil(t, selected)
		assert.Equal(t, tt.expected, selected.DurationSeconds, "route type %s", tt.routeType)
	}
}

func TestSelectRoute_CorrectsTrafficDurationToo(t *testing.T) {
	candidates := []CandidateRoute{
		{DistanceMeters: 10000, DurationSeconds: 1000, DurationInTrafficS: 1200},
	}

	selected := SelectRoute(candidates, RouteOptimal)
	require.NotNil(t, selected)
	assert.Equal(t, 1100, selected.DurationSeconds)
	assert.Equal(t, 1320, selected.DurationInTrafficS)
}

func TestSelectRoute_CorrectionRoundsToWholeSeconds(t *testing.T) {
	// 1001 * 1.1 = 1101.1 which rounds to 1101.
	selected := SelectRoute([]CandidateRoute{{DistanceMeters: 10000, DurationSeconds: 1001}}, RouteOptimal)
	require.NotNil(t, selected)
	assert.Equal(t, 1101, selected.DurationSeconds)
}
