package routing

import (
	"fmt"
	"strings"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DayTable holds traffic multipliers for the three parts of a day.
type DayTable struct {
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
}

// TrafficPatterns holds a destination's heuristic traffic tables: weekday and
// weekend time-of-day multipliers plus seasonal factors.
type TrafficPatterns struct {
	Weekday DayTable `json:"weekday"`
	Weekend DayTable `json:"weekend"`
	Summer  float64  `json:"summer"`
	Winter  float64  `json:"winter"`
}

// RouteDetails carries static descriptive facts about the road to a destination.
type RouteDetails struct {
	Stops      []string `json:"stops"`
	RoadType   string   `json:"road_type"`
	Difficulty string   `json:"difficulty"`
}

// Destination is one entry of the static trip catalog.
type Destination struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Coordinates     Coordinates     `json:"coordinates"`
	BaseDistanceKm  float64         `json:"base_distance_km"`
	RouteDetails    RouteDetails    `json:"route_details"`
	TrafficPatterns TrafficPatterns `json:"traffic_patterns"`
}

// Catalog is the immutable set of destinations reachable from the origin,
// loaded once at startup and shared read-only across requests.
type Catalog struct {
	origin       Coordinates
	originName   string
	destinations map[string]Destination
	ordered      []Destination
}

// NewCatalog validates the destination entries and builds a Catalog. Entries
// with incomplete traffic tables or a non-positive base distance are a
// configuration error and fail the load.
func NewCatalog(originName string, origin Coordinates, destinations []Destination) (*Catalog, error) {
	if len(destinations) == 0 {
		return nil, fmt.Errorf("destination catalog is empty")
	}

	byID := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		if d.ID == "" {
			return nil, fmt.Errorf("destination %q has no identifier", d.Name)
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate destination identifier %q", d.ID)
		}
		if d.BaseDistanceKm <= 0 {
			return nil, fmt.Errorf("destination %q has non-positive base distance", d.ID)
		}
		if err := validatePatterns(d.TrafficPatterns); err != nil {
			return nil, fmt.Errorf("destination %q: %w", d.ID, err)
		}
		byID[d.ID] = d
	}

	return &Catalog{
		origin:       origin,
		originName:   originName,
		destinations: byID,
		ordered:      destinations,
	}, nil
}

func validatePatterns(p TrafficPatterns) error {
	tables := map[string]DayTable{"weekday": p.Weekday, "weekend": p.Weekend}
	for name, t := range tables {
		if t.Morning <= 0 || t.Afternoon <= 0 || t.Evening <= 0 {
			return fmt.Errorf("incomplete %s traffic table", name)
		}
	}
	if p.Summer <= 0 || p.Winter <= 0 {
		return fmt.Errorf("missing seasonal traffic factors")
	}
	return nil
}

// Origin returns the catalog's fixed trip origin.
func (c *Catalog) Origin() Coordinates { return c.origin }

// OriginName returns the display name of the trip origin.
func (c *Catalog) OriginName() string { return c.originName }

// Lookup returns the destination for the given identifier (case-insensitive).
func (c *Catalog) Lookup(id string) (Destination, bool) {
	d, ok := c.destinations[strings.ToLower(id)]
	return d, ok
}

// All returns the destinations in declaration order.
func (c *Catalog) All() []Destination {
	out := make([]Destination, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDs returns the valid destination identifiers in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ordered))
	for i, d := range c.ordered {
		ids[i] = d.ID
	}
	return ids
}
