package cmd

import (
	"context"
	"net/http"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/core/engine"
	"github.com/bizwhiz/bizwhiz/internal/core/places"
	"github.com/bizwhiz/bizwhiz/internal/core/scrape"
	"github.com/bizwhiz/bizwhiz/internal/core/store"
	"github.com/bizwhiz/bizwhiz/internal/metrics"
	"github.com/bizwhiz/bizwhiz/internal/observability"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, asConfigError(err)
	}
	return cfg, nil
}

func openResultStore(ctx context.Context, cfg *config.Config) (store.ResultStore, error) {
	rs, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if js, ok := rs.(*store.JSONStore); ok {
		js.OnCorrupt = func(path string, err error) {
			observability.Logger().Warn("Results file is malformed, starting empty",
				zap.String("path", path),
				zap.Error(err))
		}
	}
	return rs, nil
}

// newSearcher wires the places client, the scraper, and the store into one
// pipeline. apiKey must already be resolved.
func newSearcher(cfg *config.Config, rs store.ResultStore, apiKey string) *engine.Searcher {
	client := places.New(apiKey)
	client.BaseURL = cfg.Places.BaseURL
	client.Client = &http.Client{Timeout: cfg.Places.Timeout}
	client.Observe = func(operation, status string) {
		if status == "" {
			status = "error"
		}
		metrics.RecordUpstreamCall(operation, status)
		observability.Logger().Debug("Upstream call",
			zap.String("operation", operation),
			zap.String("status", status))
	}

	scraper := &scrape.EmailScraper{
		Client:    &http.Client{Timeout: cfg.Scrape.Timeout},
		UserAgent: cfg.Scrape.UserAgent,
		OnError: func(website string, err error) {
			observability.Logger().Debug("Email scrape failed",
				zap.String("website", website),
				zap.Error(err))
		},
		Observe: func(_ string, found int, err error) {
			metrics.RecordScrape(found, err != nil)
		},
	}

	return &engine.Searcher{
		Geocoder: client,
		Finder:   client,
		Details:  client,
		Emails:   scraper,
		Store:    rs,
	}
}

// resolveAPIKey returns the configured key or asks for one on stdin.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return key, nil
	}
	return promptAPIKey(stdin, stderr)
}
