package wilayahapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/silverium/labelgen/domain/wilayah"
)

// Client fetches Indonesian administrative regions from the public wilayah
// lookup API. Callers (the selector) treat every error as an empty option
// list, so this client only reports, never degrades.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a region lookup client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Provinces lists all provinces
func (c *Client) Provinces(ctx context.Context) ([]wilayah.Option, error) {
	return c.get(ctx, "/provinces.json")
}

// Cities lists the cities/regencies of a province
func (c *Client) Cities(ctx context.Context, provinceID string) ([]wilayah.Option, error) {
	return c.get(ctx, "/regencies/"+provinceID+".json")
}

// Districts lists the districts of a city
func (c *Client) Districts(ctx context.Context, cityID string) ([]wilayah.Option, error) {
	return c.get(ctx, "/districts/"+cityID+".json")
}

// Villages lists the villages of a district
func (c *Client) Villages(ctx context.Context, districtID string) ([]wilayah.Option, error) {
	return c.get(ctx, "/villages/"+districtID+".json")
}

func (c *Client) get(ctx context.Context, path string) ([]wilayah.Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wilayah lookup %s returned status %d", path, resp.StatusCode)
	}

	var options []wilayah.Option
	if err := json.NewDecoder(resp.Body).Decode(&options); err != nil {
		return nil, err
	}

	return options, nil
}
