package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MetersPerMile converts the user-facing radius to the unit the places API expects.
const MetersPerMile = 1609.34

// Placeholders stored in place of fields the details lookup did not return.
const (
	WebsiteNotAvailable = "Website not available"
	PhoneNotAvailable   = "Phone number not available"
	AddressNotAvailable = "Address not available"
)

// ErrInvalidRequest marks search input rejected before any upstream call.
var ErrInvalidRequest = errors.New("invalid search request")

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}

// Place is a single nearby-search hit.
type Place struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// PlaceDetails holds the fields fetched for one place. Empty means the
// upstream omitted the field.
type PlaceDetails struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Phone   string `json:"formatted_phone_number"`
	Address string `json:"formatted_address"`
}

// BusinessRecord is one row of the result set. JSON keys match the
// businesses_results.json layout.
type BusinessRecord struct {
	Name          string `json:"Name" yaml:"name"`
	Website       string `json:"Website" yaml:"website"`
	Phone         string `json:"Phone" yaml:"phone"`
	Emails        string `json:"Emails" yaml:"emails"`
	StreetAddress string `json:"Street Address" yaml:"street_address"`
	Status        string `json:"Status" yaml:"status"`
}

// JoinEmails renders an email set the way records store it.
func JoinEmails(emails []string) string {
	return strings.Join(emails, ", ")
}

// SearchRequest carries the user's search input.
type SearchRequest struct {
	ZipCode      string  `json:"zip_code"`
	RadiusMiles  float64 `json:"radius_miles"`
	BusinessType string  `json:"business_type"`
}

// Validate checks the request before any upstream call is made.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.ZipCode) == "" {
		return fmt.Errorf("%w: zip code is required", ErrInvalidRequest)
	}
	if math.IsNaN(r.RadiusMiles) || math.IsInf(r.RadiusMiles, 0) || r.RadiusMiles <= 0 {
		return fmt.Errorf("%w: radius must be a positive number of miles, got %v", ErrInvalidRequest, r.RadiusMiles)
	}
	if strings.TrimSpace(r.BusinessType) == "" {
		return fmt.Errorf("%w: business type is required", ErrInvalidRequest)
	}
	return nil
}

// RadiusMeters converts the requested radius to meters.
func (r SearchRequest) RadiusMeters() float64 {
	return r.RadiusMiles * MetersPerMile
}
