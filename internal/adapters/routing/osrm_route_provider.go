package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/platform/obs"
	"github.com/derek-dv/eld-planner/internal/ports"
)

const (
	milesPerMeter  = 0.000621371
	secondsPerHour = 3600.0
)

// OSRMRouteProvider implements RouteProvider against an OSRM routing server.
//
// It coordinates:
//   - Optional persistent route caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.RouteCache
}

// NewOSRMRouteProvider creates a provider for the given OSRM base URL
// (for example "https://router.project-osrm.org"). cache may be nil.
func NewOSRMRouteProvider(baseURL string, cache ports.RouteCache) *OSRMRouteProvider {
	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		profile: "driving",
		cache:   cache,
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
		Geometry        struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute returns the routed distance, duration, and GeoJSON polyline
// between two coordinates, consulting the cache before the network.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	start, end domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, start, end)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		o.baseURL, o.profile, start.Lon, start.Lat, end.Lon, end.Lat,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route: request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("get route: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.RouteResult{}, fmt.Errorf(
			"get route: OSRM routing error %q: %s", decoded.Code, decoded.Message,
		)
	}
	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("get route: OSRM returned no routes")
	}

	route := decoded.Routes[0]

	geometry := make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		// Pairs with fewer than two values are skipped rather than rejected.
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	result := ports.RouteResult{
		DistanceMiles: route.DistanceMeters * milesPerMeter,
		DurationHours: route.DurationSeconds / secondsPerHour,
		Geometry:      geometry,
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, start, end, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}
