package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.opencagedata.com"

type OpenCage struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenCage(apiKey string, timeout time.Duration) *OpenCage {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &OpenCage{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (o *OpenCage) Geocode(ctx context.Context, query string) (float64, float64, error) {
	u := fmt.Sprintf("%s/geocode/v1/json?q=%s&key=%s&limit=1",
		o.baseURL, url.QueryEscape(query), url.QueryEscape(o.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return 0, 0, fmt.Errorf("opencage: http %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("opencage: decode response: %w", err)
	}

	if len(body.Results) == 0 {
		return 0, 0, ErrNotFound
	}

	g := body.Results[0].Geometry
	return g.Lat, g.Lng, nil
}
