package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTips(t *testing.T) {
	catalog := DefaultCatalog()
	pichilemu, ok := catalog.Lookup("pichilemu")
	require.True(t, ok)

	// 2026-01-17 is a summer Saturday.
	summerWeekend := time.Date(2026, time.January, 17, 9, 0, 0, 0, time.UTC)
	tips := GenerateTips(pichilemu, summerWeekend)

	assert.Contains(t, tips, "Leave early to avoid peak congestion")
	assert.Contains(t, tips, "Winding road ahead, drive carefully")
	assert.Contains(t, tips, "Recommended stops: Santa Cruz, Lolol")
}

func TestGenerateTips_WinterWeekdayLowDifficulty(t *testing.T) {
	catalog := DefaultCatalog()
	constitucion, ok := catalog.Lookup("constitucion")
	require.True(t, ok)

	// 2026-06-15 is a winter Monday; only the stops tip applies.
	winterWeekday := time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)
	tips := GenerateTips(constitucion, winterWeekday)

	assert.Equal(t, []string{"Recommended stops: Maule"}, tips)
}
