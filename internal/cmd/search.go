package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/core"
	"github.com/bizwhiz/bizwhiz/internal/metrics"
	"github.com/bizwhiz/bizwhiz/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for businesses near a zip code",
	Long: `Search geocodes the zip code, finds places of the given type within the
radius, loads each place's website, phone, and address, and scrapes the
website for contact emails. The results replace the saved result set.

If the search fails the saved results are left as they were.`,
	Example: `  bizwhiz search --zip 94103 --radius 2 --type cafe
  bizwhiz search --zip 10001 --radius 0.5 --type dentist -o csv --out dentists.csv`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("zip", "", "zip code to search around")
	searchCmd.Flags().Float64("radius", 0, "search radius in miles")
	searchCmd.Flags().String("type", "", "business type (for example: restaurant, cafe, dentist)")
	addOutputFlags(searchCmd)

	_ = searchCmd.MarkFlagRequired("zip")
	_ = searchCmd.MarkFlagRequired("radius")
	_ = searchCmd.MarkFlagRequired("type")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := observability.CLILogger

	zip, _ := cmd.Flags().GetString("zip")
	radius, _ := cmd.Flags().GetFloat64("radius")
	businessType, _ := cmd.Flags().GetString("type")
	req := core.SearchRequest{ZipCode: zip, RadiusMiles: radius, BusinessType: businessType}
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := resolveOutputFormat(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return err
	}

	rs, err := openResultStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer rs.Close() //nolint:errcheck

	searchID := uuid.NewString()
	searcher := newSearcher(cfg, rs, apiKey)
	searcher.Progress = func(i int, r core.BusinessRecord) {
		logger.Debug("Assembled business record",
			zap.String("search_id", searchID),
			zap.Int("row", i+1),
			zap.String("name", r.Name))
	}

	logger.Info("Searching",
		zap.String("search_id", searchID),
		zap.String("zip", req.ZipCode),
		zap.Float64("radius_miles", req.RadiusMiles),
		zap.String("type", req.BusinessType))

	start := time.Now()
	records, err := searcher.Search(ctx, req)
	metrics.RecordSearch(req.BusinessType, err == nil, len(records), time.Since(start))
	if err != nil {
		logger.Error("Search failed", zap.String("search_id", searchID), zap.Error(err))
		return err
	}

	logger.Info("Search complete",
		zap.String("search_id", searchID),
		zap.Int("results", len(records)),
		zap.Duration("elapsed", time.Since(start)))

	return renderRecords(cmd, records)
}
