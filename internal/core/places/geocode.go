package places

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

const operationGeocode = "geocode"

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location core.Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a zip code to the coordinates of the first geocoding result.
func (c *Client) Geocode(ctx context.Context, zipCode string) (core.Coordinates, error) {
	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return core.Coordinates{}, fmt.Errorf("%s: zip code is required", operationGeocode)
	}

	params := url.Values{}
	params.Set("address", zipCode)

	var payload geocodeResponse
	if err := c.get(ctx, operationGeocode, "/geocode/json", params, &payload); err != nil {
		return core.Coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return core.Coordinates{}, &UpstreamError{
			Operation: operationGeocode,
			Status:    statusOK,
			Message:   fmt.Sprintf("no results for zip code %s", zipCode),
		}
	}

	return payload.Results[0].Geometry.Location, nil
}
