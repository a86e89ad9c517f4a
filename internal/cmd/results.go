package cmd

import (
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the saved results",
	Long: `Show the result set saved by the last successful search, colored by status.

Use --sort to order by a column (name, website, phone, emails, street address,
status). Row numbers stay the stored ones, so they still work with
'bizwhiz status'.`,
	Example: `  bizwhiz results
  bizwhiz results --sort status --desc
  bizwhiz results -o csv --out results.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := resolveOutputFormat(cmd); err != nil {
			return err
		}
		if _, err := resolveSortOrder(cmd, nil); err != nil {
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

		records, err := rs.Load(cmd.Context())
		if err != nil {
			return err
		}
		return renderRecords(cmd, records)
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	addOutputFlags(resultsCmd)
	resultsCmd.Flags().String("sort", "", "sort by column (name, website, phone, emails, street address, status)")
	resultsCmd.Flags().Bool("desc", false, "sort in descending order")
}
