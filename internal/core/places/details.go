package places

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

const (
	operationDetails = "place details"
	detailsFields    = "name,website,formatted_phone_number,formatted_address"
)

type detailsResponse struct {
	Result core.PlaceDetails `json:"result"`
}

// Details fetches name, website, phone, and address for one place.
func (c *Client) Details(ctx context.Context, placeID string) (core.PlaceDetails, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return core.PlaceDetails{}, fmt.Errorf("%s: place id is required", operationDetails)
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	var payload detailsResponse
	if err := c.get(ctx, operationDetails, "/place/details/json", params, &payload); err != nil {
		return core.PlaceDetails{}, err
	}

	return payload.Result, nil
}
