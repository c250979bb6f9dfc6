package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/babynames/internal/fixture"
)

func newFixtureCommand() *cobra.Command {
	var out string
	cfg := fixture.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Write a small synthetic names archive for offline use",
		Long: `Write a ZIP with one yobYYYY.txt file per year in the same layout as the
SSA archive. Point source_url (or --source) at the file to explore offline:

  babynames fixture --out names.zip
  babynames serve --source names.zip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fixture.Synthetic(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec // archive is public data
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, years %d-%d)\n", out, len(data), cfg.FromYear, cfg.ToYear)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "names.zip", "output file")
	cmd.Flags().IntVar(&cfg.FromYear, "from", cfg.FromYear, "first year")
	cmd.Flags().IntVar(&cfg.ToYear, "to", cfg.ToYear, "last year")
	return cmd
}
