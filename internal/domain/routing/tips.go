package routing

import (
	"fmt"
	"strings"
	"time"
)

// GenerateTips returns trip advice derived from the catalog entry and the
// departure time.
func GenerateTips(d Destination, at time.Time) []string {
	var tips []string

	isSummer := false
	switch at.Month() {
	case time.December, time.January, time.February:
		isSummer = true
	}
	isWeekend := at.Weekday() == time.Saturday || at.Weekday() == time.Sunday

	if isSummer && isWeekend {
		tips = append(tips, "Leave early to avoid peak congestion")
	}
	if d.RouteDetails.Difficulty == "high" {
		tips = append(tips, "Winding road ahead, drive carefully")
	}
	if len(d.RouteDetails.Stops) > 0 {
		tips = append(tips, fmt.Sprintf("Recommended stops: %s", strings.Join(d.RouteDetails.Stops, ", ")))
	}
	return tips
}
