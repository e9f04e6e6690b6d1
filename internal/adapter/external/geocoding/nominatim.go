package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/observability/telemetry"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves postal addresses against the OpenStreetMap
// Nominatim API. Calls go through a circuit breaker so a flapping
// upstream fails fast instead of stalling station registration.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimGeocoder creates a geocoder. An empty baseURL selects the
// public Nominatim instance.
func NewNominatimGeocoder(baseURL string, log *zap.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Geocoding circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &NominatimGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: cb,
		log:     log,
	}
}

// Geocode resolves an address to coordinates. Failures propagate to the
// caller; there is no retry.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.lookup(ctx, address)
	})
	if err != nil {
		telemetry.GeocodingRequestsTotal.WithLabelValues("error").Inc()
		return 0, 0, fmt.Errorf("geocoding failed: %w", err)
	}

	telemetry.GeocodingRequestsTotal.WithLabelValues("ok").Inc()
	coords := result.([2]float64)
	return coords[0], coords[1], nil
}

func (g *NominatimGeocoder) lookup(ctx context.Context, address string) ([2]float64, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return [2]float64{}, err
	}
	req.Header.Set("User-Agent", "evsync/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return [2]float64{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return [2]float64{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return [2]float64{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return [2]float64{}, fmt.Errorf("no results for address %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("invalid latitude in response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("invalid longitude in response: %w", err)
	}

	return [2]float64{lat, lon}, nil
}
