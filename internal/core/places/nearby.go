package places

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

const operationNearby = "nearby search"

type nearbyResponse struct {
	Results []core.Place `json:"results"`
}

// NearbySearch lists places of the given type within radiusMeters of coords,
// in upstream order.
func (c *Client) NearbySearch(ctx context.Context, coords core.Coordinates, radiusMeters float64, businessType string) ([]core.Place, error) {
	params := url.Values{}
	params.Set("location", coords.String())
	params.Set("radius", strconv.FormatFloat(radiusMeters, 'f', -1, 64))
	params.Set("type", businessType)

	var payload nearbyResponse
	if err := c.get(ctx, operationNearby, "/place/nearbysearch/json", params, &payload); err != nil {
		return nil, err
	}

	return payload.Results, nil
}
