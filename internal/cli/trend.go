package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/okian/babynames/internal/domain/model"
	"github.com/okian/babynames/internal/domain/view"
	"github.com/okian/babynames/pkg/logger"
)

type trendFlags struct {
	from, to     int
	female, male bool
	source       string
	limit        int
}

func newTrendCommand(opts *rootOptions) *cobra.Command {
	flags := &trendFlags{}
	cmd := &cobra.Command{
		Use:   "trend NAME",
		Short: "Print the most popular year and the yearly table for a name",
		Long: `Load the dataset, filter it by NAME (case-insensitive, exact), year range
and sex, then print the most popular year and one row per year and sex with
its count and proportion.

Example:
  babynames trend Jordan --from 1950 --to 2000 --male=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *opts.cfg
			if flags.source != "" {
				cfg.SourceURL = flags.source
			}
			if flags.limit >= 0 {
				cfg.MaxTableRows = flags.limit
			}

			f := view.Filters{
				Name:    args[0],
				YearMin: cfg.DefaultYearMin,
				YearMax: cfg.DefaultYearMax,
				Female:  flags.female,
				Male:    flags.male,
			}
			if cmd.Flags().Changed("from") {
				f.YearMin = flags.from
			}
			if cmd.Flags().Changed("to") {
				f.YearMax = flags.to
			}

			svc := NewService(&cfg, logger.Get())
			v, err := svc.Trend(cmd.Context(), f)
			if err != nil {
				return err
			}
			printTrend(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().IntVar(&flags.from, "from", view.DefaultYearMin, "first year, inclusive")
	cmd.Flags().IntVar(&flags.to, "to", view.DefaultYearMax, "last year, inclusive")
	cmd.Flags().BoolVar(&flags.female, "female", true, "include female records")
	cmd.Flags().BoolVar(&flags.male, "male", true, "include male records")
	cmd.Flags().StringVar(&flags.source, "source", "", "archive URL or path (overrides source_url)")
	cmd.Flags().IntVar(&flags.limit, "limit", -1, "maximum table rows; 0 for all (overrides max_table_rows)")
	return cmd
}

// colorEnabled reports whether w is a terminal that accepts colour.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printTrend formats a view for the terminal.
func printTrend(w io.Writer, v view.View) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)
	bySex := map[model.Sex]*color.Color{
		model.Female: color.New(color.FgRed),
		model.Male:   color.New(color.FgBlue),
	}
	if colorEnabled(w) {
		cyan.EnableColor()
		yellow.EnableColor()
		for _, c := range bySex {
			c.EnableColor()
		}
	} else {
		cyan.DisableColor()
		yellow.DisableColor()
		for _, c := range bySex {
			c.DisableColor()
		}
	}

	if v.Empty {
		yellow.Fprintln(w, v.Message)
		return
	}

	cyan.Fprintf(w, "Most Popular Year for %q\n", v.Filters.Name)
	fmt.Fprintln(w, v.Summary)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "year\tsex\tcount\tprop")
	for _, r := range v.Table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.6f\n", r.Year, bySex[r.Sex].Sprint(string(r.Sex)), r.Count, r.Prop)
	}
	_ = tw.Flush()
	if v.Table.Truncated {
		yellow.Fprintf(w, "showing %d of %d rows\n", len(v.Table.Rows), v.Table.Total)
	}
}
