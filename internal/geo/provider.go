package geo

import (
	"strconv"

	"rehabus/internal/domain"
	"rehabus/internal/utils"
)

// Result carries the resolved driving distance. Coordinates are set only
// when the geocode fallback path was taken.
type Result struct {
	Meters    int64
	OriginLat *float64
	OriginLng *float64
	DestLat   *float64
	DestLng   *float64
}

// DistanceResolver is the engine-facing contract.
type DistanceResolver interface {
	ResolveDistance(origin, destination string) (Result, error)
}

// Provider resolves a billable driving distance between two addresses.
// One built-in resilience step only: when the address lookup finds no route
// element, both addresses are geocoded and the matrix call is retried with
// coordinates. Every failure surfaces as a domain.UpstreamError.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) ResolveDistance(origin, destination string) (Result, error) {
	origin = utils.NormalizeAddress(origin)
	destination = utils.NormalizeAddress(destination)

	resp, err := p.client.distanceMatrix(origin, destination)
	if err != nil {
		return Result{}, domain.UpstreamError{Provider: "distance matrix", Err: err}
	}
	if resp.Status != statusOK {
		// Top-level failure: the service itself rejected the call, so a
		// retry with the same addresses would fail the same way.
		return Result{}, domain.UpstreamError{Provider: "distance matrix", Msg: "status " + resp.Status}
	}

	if el, ok := firstElement(resp); ok && el.Status == statusOK {
		return Result{Meters: el.Distance.Value}, nil
	}

	// The addresses were not routable as text. Geocode each one and retry
	// the matrix call with coordinates.
	oLat, oLng, err := p.geocodeOne(origin)
	if err != nil {
		return Result{}, err
	}
	dLat, dLng, err := p.geocodeOne(destination)
	if err != nil {
		return Result{}, err
	}

	resp, err = p.client.distanceMatrix(latLng(oLat, oLng), latLng(dLat, dLng))
	if err != nil {
		return Result{}, domain.UpstreamError{Provider: "distance matrix", Err: err}
	}
	el, ok := firstElement(resp)
	if resp.Status != statusOK || !ok || el.Status != statusOK {
		return Result{}, domain.UpstreamError{Provider: "distance matrix", Msg: "no route for geocoded coordinates"}
	}

	return Result{
		Meters:    el.Distance.Value,
		OriginLat: &oLat,
		OriginLng: &oLng,
		DestLat:   &dLat,
		DestLng:   &dLng,
	}, nil
}

func (p *Provider) geocodeOne(address string) (float64, float64, error) {
	resp, err := p.client.geocode(address)
	if err != nil {
		return 0, 0, domain.UpstreamError{Provider: "geocode", Err: err}
	}
	lat, lng, ok := firstLocation(resp)
	if !ok {
		return 0, 0, domain.UpstreamError{Provider: "geocode", Msg: "no result for " + address}
	}
	return lat, lng, nil
}

func latLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
