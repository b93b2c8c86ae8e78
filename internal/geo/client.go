// Package geo wraps the third-party driving-distance and geocoding service.
// The upstream contract is loose: statuses exist at two levels, arrays can be
// empty and fields can be missing, so every response goes through a usability
// check before any value is trusted.
package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const statusOK = "OK"

// Client calls the distance-matrix and geocode endpoints.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient builds a client with the hard latency ceilings for upstream
// calls: 5s to connect, 10s for the whole request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				ResponseHeaderTimeout: 10 * time.Second,
			},
		},
	}
}

type matrixElement struct {
	Status   string `json:"status"`
	Distance struct {
		Value int64 `json:"value"`
	} `json:"distance"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) distanceMatrix(origin, destination string) (matrixResponse, error) {
	var out matrixResponse
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("key", c.APIKey)

	if err := c.getJSON("/maps/api/distancematrix/json", q, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) geocode(address string) (geocodeResponse, error) {
	var out geocodeResponse
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)

	if err := c.getJSON("/maps/api/geocode/json", q, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) getJSON(path string, q url.Values, dst any) error {
	resp, err := c.HTTP.Get(c.BaseURL + path + "?" + q.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// firstElement extracts the single element of a 1x1 matrix response.
// Missing rows or elements count as unusable, not as an error to propagate.
func firstElement(resp matrixResponse) (matrixElement, bool) {
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return matrixElement{}, false
	}
	return resp.Rows[0].Elements[0], true
}

// firstLocation extracts the first geocode hit.
func firstLocation(resp geocodeResponse) (lat, lng float64, ok bool) {
	if resp.Status != statusOK || len(resp.Results) == 0 {
		return 0, 0, false
	}
	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, true
}
