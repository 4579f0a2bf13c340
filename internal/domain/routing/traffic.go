package routing

import "time"

// TrafficLevel is the coarse live-traffic classification used to scale fuel
// consumption. It is distinct from the heuristic traffic multiplier, which
// models seasonal and time-of-day congestion for the fallback path.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "low"
	TrafficMedium TrafficLevel = "medium"
	TrafficHigh   TrafficLevel = "high"
)

// Description returns a human-readable summary of the traffic level.
func (l TrafficLevel) Description() string {
	switch l {
	case TrafficLow:
		return "Light traffic, free-flowing roads"
	case TrafficHigh:
		return "Heavy traffic, expect significant delays"
	default:
		return "Moderate traffic"
	}
}

// ClassifyHour maps an hour of day (0-23) to a traffic level: the 07-09 and
// 17-19 commute windows are high, 09-17 daytime is medium, everything else low.
func ClassifyHour(hour int) TrafficLevel {
	switch {
	case (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19):
		return TrafficHigh
	case hour >= 9 && hour < 17:
		return TrafficMedium
	default:
		return TrafficLow
	}
}

// SeasonalMultiplier returns the destination's summer factor during the
// southern-hemisphere summer (December through February) and its winter
// factor otherwise.
func SeasonalMultiplier(d Destination, at time.Time) float64 {
	switch at.Month() {
	case time.December, time.January, time.February:
		return d.TrafficPatterns.Summer
	default:
		return d.TrafficPatterns.Winter
	}
}

// DayTimeMultiplier selects the weekday/weekend and time-of-day multiplier
// from the destination's traffic table.
func DayTimeMultiplier(d Destination, at time.Time) float64 {
	table := d.TrafficPatterns.Weekday
	if wd := at.Weekday(); wd == time.Saturday || wd == time.Sunday {
		table = d.TrafficPatterns.Weekend
	}

	hour := at.Hour()
	switch {
	case hour >= 6 && hour < 12:
		return table.Morning
	case hour >= 12 && hour < 18:
		return table.Afternoon
	default:
		return table.Evening
	}
}

// TrafficMultiplier is the combined heuristic congestion factor for a trip to
// the destination at the given time.
func TrafficMultiplier(d Destination, at time.Time) float64 {
	return SeasonalMultiplier(d, at) * DayTimeMultiplier(d, at)
}
