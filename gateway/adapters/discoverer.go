package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
)

// DiscovererHTTP creates an interfaces.Discoverer that talks to the discovery service over HTTP:
// GET baseURL/discovery/services. Panics on empty baseURL or nil client.
//
// Parameters: baseURL — discovery base URL (e.g. http://discovery:8081), no trailing slash; client — HTTP client
// (timeout recommended; main uses 10s).
//
// Returns: interfaces.Discoverer (*discovererHTTP).
//
// Called from cmd/main when DISCOVERY_URL is set.
func DiscovererHTTP(baseURL string, client *http.Client) interfaces.Discoverer {
	return &discovererHTTP{
		baseURL: helpers.StrPanic(baseURL, "adapters.discoverer.go: baseURL is required"),
		client:  helpers.NilPanic(client, "adapters.discoverer.go: http client is required"),
	}
}

type discovererHTTP struct {
	baseURL string
	client  *http.Client
}

// GetServices performs GET baseURL/discovery/services and decodes the {"<type>": ["<url>", ...]} map.
//
// Returns: (map, nil) on 200 (possibly empty; types with an empty list are dropped); (nil, error) on other
// status, network error or JSON parse error (including a JSON null body).
//
// Called from cmd/main.bootstrapRegistry.
func (d *discovererHTTP) GetServices(ctx context.Context) (map[domain.ServiceType][]domain.InstanceURL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/discovery/services", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("discovery returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var raw map[string][]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode discovery services: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("discovery response is not an object")
	}
	out := make(map[domain.ServiceType][]domain.InstanceURL, len(raw))
	for t, urls := range raw {
		if len(urls) == 0 {
			continue
		}
		list := make([]domain.InstanceURL, 0, len(urls))
		for _, u := range urls {
			list = append(list, domain.InstanceURL(u))
		}
		out[domain.ServiceType(t)] = list
	}
	return out, nil
}
