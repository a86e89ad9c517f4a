package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// Geocoder resolves a zip code to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, zipCode string) (core.Coordinates, error)
}

// PlaceFinder lists places of a type around a point.
type PlaceFinder interface {
	NearbySearch(ctx context.Context, coords core.Coordinates, radiusMeters float64, businessType string) ([]core.Place, error)
}

// DetailsFetcher loads the contact fields of one place.
type DetailsFetcher interface {
	Details(ctx context.Context, placeID string) (core.PlaceDetails, error)
}

// EmailFinder collects contact emails from a website. Failures yield an
// empty slice.
type EmailFinder interface {
	FindEmails(ctx context.Context, website string) []string
}

// RecordSaver receives the finished result set.
type RecordSaver interface {
	Replace(ctx context.Context, records []core.BusinessRecord) error
}

// Searcher runs the zip code to business records pipeline.
type Searcher struct {
	Geocoder Geocoder
	Finder   PlaceFinder
	Details  DetailsFetcher
	Emails   EmailFinder
	Store    RecordSaver

	// Progress, when set, is called with each record as it is assembled.
	Progress func(index int, record core.BusinessRecord)
}

// Search geocodes the request, finds nearby places, and builds one record
// per place in upstream order. The store is replaced only when every
// upstream call succeeds.
func (s *Searcher) Search(ctx context.Context, req core.SearchRequest) ([]core.BusinessRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coords, err := s.Geocoder.Geocode(ctx, strings.TrimSpace(req.ZipCode))
	if err != nil {
		return nil, err
	}

	places, err := s.Finder.NearbySearch(ctx, coords, req.RadiusMeters(), strings.TrimSpace(req.BusinessType))
	if err != nil {
		return nil, err
	}

	records := make([]core.BusinessRecord, 0, len(places))
	for i, place := range places {
		details, err := s.Details.Details(ctx, place.PlaceID)
		if err != nil {
			return nil, err
		}

		record := s.buildRecord(ctx, place, details)
		records = append(records, record)
		if s.Progress != nil {
			s.Progress(i, record)
		}
	}

	if s.Store != nil {
		if err := s.Store.Replace(ctx, records); err != nil {
			return nil, fmt.Errorf("save results: %w", err)
		}
	}

	return records, nil
}

func (s *Searcher) buildRecord(ctx context.Context, place core.Place, details core.PlaceDetails) core.BusinessRecord {
	name := place.Name
	if name == "" {
		name = details.Name
	}

	record := core.BusinessRecord{
		Name:          name,
		Website:       orSentinel(details.Website, core.WebsiteNotAvailable),
		Phone:         orSentinel(details.Phone, core.PhoneNotAvailable),
		StreetAddress: orSentinel(details.Address, core.AddressNotAvailable),
		Status:        string(core.StatusNotContacted),
	}

	if details.Website != "" && s.Emails != nil {
		record.Emails = core.JoinEmails(s.Emails.FindEmails(ctx, details.Website))
	}

	return record
}

func (s *Searcher) validate() error {
	if s == nil {
		return errors.New("searcher is not configured")
	}
	switch {
	case s.Geocoder == nil:
		return errors.New("searcher: geocoder is required")
	case s.Finder == nil:
		return errors.New("searcher: place finder is required")
	case s.Details == nil:
		return errors.New("searcher: details fetcher is required")
	}
	return nil
}

func orSentinel(value, sentinel string) string {
	if strings.TrimSpace(value) == "" {
		return sentinel
	}
	return value
}
