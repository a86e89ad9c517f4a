package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/core"
	"github.com/bizwhiz/bizwhiz/internal/metrics"
	"github.com/bizwhiz/bizwhiz/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status <row> <status>",
	Short: "Set the outreach status of a saved result",
	Long: `Set the outreach status of one saved result. Rows are numbered from 1 as
in the results table. The status is one of:

  Not Contacted, Contacted, Signed-up, Declined Services

Case, spaces, and dashes are ignored, so "signed up" and "declined-services"
also work.`,
	Example: `  bizwhiz status 3 contacted
  bizwhiz status 1 "Declined Services"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, status, err := parseStatusArgs(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rs, err := openResultStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rs.Close() //nolint:errcheck

		if err := rs.UpdateStatus(cmd.Context(), row-1, status); err != nil {
			return err
		}
		metrics.RecordStatusChange(string(status))
		observability.CLILogger.Debug("Status updated",
			zap.Int("row", row),
			zap.String("status", string(status)))

		fmt.Fprintf(cmd.OutOrStdout(), "Row %d: %s (%s)\n", row, status, core.ColorForStatus(string(status)).Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// parseStatusArgs reads a 1-based row and a status that may span the
// remaining arguments.
func parseStatusArgs(args []string) (int, core.Status, error) {
	if len(args) < 2 {
		return 0, "", fmt.Errorf("expected <row> <status>")
	}
	row, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || row < 1 {
		return 0, "", fmt.Errorf("invalid row %q: must be a number starting at 1", args[0])
	}
	status, err := core.ParseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return 0, "", err
	}
	return row, status, nil
}
