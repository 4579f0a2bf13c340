package routing

// DefaultCatalog builds the coastal trip catalog served from Talca. The
// entries are fixed business data, not tunable configuration: distances are
// road kilometers from the Talca origin and the traffic tables encode observed
// weekday/weekend and seasonal congestion per destination.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog("Talca", Coordinates{Lat: -35.4272, Lng: -71.6554}, []Destination{
		{
			ID:             "pichilemu",
			Name:           "Pichilemu",
			Coordinates:    Coordinates{Lat: -34.3873, Lng: -72.0034},
			BaseDistanceKm: 238,
			RouteDetails: RouteDetails{
				Stops:      []string{"Santa Cruz", "Lolol"},
				RoadType:   "paved",
				Difficulty: "high",
			},
			TrafficPatterns: TrafficPatterns{
				Weekday: DayTable{Morning: 1.0, Afternoon: 1.2, Evening: 1.1},
				Weekend: DayTable{Morning: 1.4, Afternoon: 1.6, Evening: 1.3},
				Summer:  1.5,
				Winter:  1.0,
			},
		},
		{
			ID:             "iloca",
			Name:           "Iloca",
			Coordinates:    Coordinates{Lat: -34.9307, Lng: -72.1791},
			BaseDistanceKm: 147,
			RouteDetails: RouteDetails{
				Stops:      []string{"Duao"},
				RoadType:   "paved",
				Difficulty: "medium",
			},
			TrafficPatterns: TrafficPatterns{
				Weekday: DayTable{Morning: 1.0, Afternoon: 1.2, Evening: 1.1},
				Weekend: DayTable{Morning: 1.3, Afternoon: 1.5, Evening: 1.2},
				Summer:  1.4,
				Winter:  1.0,
			},
		},
		{
			ID:             "constitucion",
			Name:           "Constitución",
			Coordinates:    Coordinates{Lat: -35.3330, Lng: -72.4167},
			BaseDistanceKm: 111,
			RouteDetails: RouteDetails{
				Stops:      []string{"Maule"},
				RoadType:   "paved",
				Difficulty: "low",
			},
			TrafficPatterns: TrafficPatterns{
				Weekday: DayTable{Morning: 1.0, Afternoon: 1.1, Evening: 1.0},
				Weekend: DayTable{Morning: 1.2, Afternoon: 1.4, Evening: 1.1},
				Summer:  1.3,
				Winter:  1.0,
			},
		},
	})
	if err != nil {
		// The default catalog is compiled-in data; failing validation here is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return catalog
}
