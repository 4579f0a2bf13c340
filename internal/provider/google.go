// Package provider implements the external directions provider port using the
// Google Directions API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rutacostera/service-routes/internal/domain/routing"
)

const (
	directionsURL = "https://maps.googleapis.com/maps/api/directions/json"

	defaultTimeout = 3 * time.Second

	httpMaxIdleConns    = 10
	httpIdleConnTimeout = 30 * time.Second
)

// GoogleDirections calls the Google Directions API and maps its responses to
// candidate routes. Every call is bounded by the configured timeout so a slow
// provider degrades to the caller's fallback instead of blocking.
type GoogleDirections struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGoogleDirections creates a directions client. A non-positive timeout
// falls back to the default.
func NewGoogleDirections(apiKey string, timeout time.Duration, logger *zap.Logger) *GoogleDirections {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &GoogleDirections{
		apiKey:  apiKey,
		baseURL: directionsURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// directions API response shapes, limited to the fields we read.

type directionsResponse struct {
	Status string           `json:"status"`
	Routes []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	Summary          string            `json:"summary"`
	Legs             []directionsLeg   `json:"legs"`
	OverviewPolyline overviewPolyline  `json:"overview_polyline"`
}

type directionsLeg struct {
	Distance          *valueField `json:"distance"`
	Duration          *valueField `json:"duration"`
	DurationInTraffic *valueField `json:"duration_in_traffic"`
}

type valueField struct {
	Value int `json:"value"`
}

type overviewPolyline struct {
	Points string `json:"points"`
}

// Routes requests driving directions and returns every alternative as a
// candidate route. A non-OK API status or an empty route list is an error;
// the orchestrator treats any error here as provider unavailability.
func (g *GoogleDirections) Routes(ctx context.Context, query routing.ProviderQuery) ([]routing.CandidateRoute, error) {
	params := url.Values{}
	params.Add("origin", formatLatLng(query.Origin))
	params.Add("destination", formatLatLng(query.Destination))
	params.Add("mode", query.Mode)
	params.Add("alternatives", strconv.FormatBool(query.Alternatives))
	params.Add("departure_time", strconv.FormatInt(query.DepartureTime.Unix(), 10))
	params.Add("traffic_model", string(query.TrafficModel))
	if len(query.Avoid) > 0 {
		params.Add("avoid", strings.Join(query.Avoid, "|"))
	}
	if query.Region != "" {
		params.Add("region", query.Region)
	}
	params.Add("key", g.apiKey)

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("directions: create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions: http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("directions: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions: status %d: %s", resp.StatusCode, string(body))
	}

	var parsed directionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("directions: unmarshal response: %w", err)
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("directions: api status %s", parsed.Status)
	}
	if len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("directions: no routes returned")
	}

	candidates := make([]routing.CandidateRoute, 0, len(parsed.Routes))
	for _, r := range parsed.Routes {
		c, err := toCandidate(r)
		if err != nil {
			g.logger.Warn("skipping malformed directions route", zap.Error(err))
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("directions: all returned routes were malformed")
	}
	return candidates, nil
}

// toCandidate sums leg metrics into one candidate. Duration-in-traffic is
// carried only when every leg reported it.
func toCandidate(r directionsRoute) (routing.CandidateRoute, error) {
	if len(r.Legs) == 0 {
		return routing.CandidateRoute{}, fmt.Errorf("route %q has no legs", r.Summary)
	}

	var distance, duration, inTraffic int
	hasTraffic := true
	for _, leg := range r.Legs {
		if leg.Distance == nil || leg.Duration == nil {
			return routing.CandidateRoute{}, fmt.Errorf("route %q has a leg without metrics", r.Summary)
		}
		distance += leg.Distance.Value
		duration += leg.Duration.Value
		if leg.DurationInTraffic != nil {
			inTraffic += leg.DurationInTraffic.Value
		} else {
			hasTraffic = false
		}
	}
	if !hasTraffic {
		inTraffic = 0
	}

	return routing.CandidateRoute{
		DistanceMeters:     distance,
		DurationSeconds:    duration,
		DurationInTrafficS: inTraffic,
		Summary:            r.Summary,
		Path:               r.OverviewPolyline.Points,
	}, nil
}

func formatLatLng(c routing.Coordinates) string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}
