package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"backorder/app"
	"backorder/domain/core"
	"backorder/domain/order"
	"backorder/internal/carryforward"
	"backorder/internal/config"
	"backorder/internal/container"
	"backorder/internal/errors"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	configFile string
	quiet      bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "backorder",
		Short:         "Build daily backorder reports from order exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default: backorder.yaml in . or ./configs)")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress per-stage log output")

	rootCmd.AddCommand(
		newGenerateCmd(flags),
		newLivingCmd(flags),
		newLocateHistoryCmd(flags),
	)
	return rootCmd
}

type runFlags struct {
	output  string
	sortKey string
	history string
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Generate the standard backorder report from an ERP export",
		Long: `Generate the standard two-sheet (MILITARY / COMMERCIAL) backorder report.

Example: backorder generate "Backorders 030825.xlsx" --sort due-date`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, f, args, false)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: BACKORDER REPORT <MMDDYY>.xlsx)")
	cmd.Flags().StringVar(&f.sortKey, "sort", "", "Sort key: order-number, salesperson, due-date or dock")
	return cmd
}

func newLivingCmd(g *globalFlags) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "living [input]",
		Short: "Generate the living report, carrying comments forward from history",
		Long: `Generate the living backorder report from a raw-data file. Comments and
dock annotations are copied from the most recent report in the history
directory within the lookback window.

Example: backorder living raw.xlsx --history report_history`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, f, args, true)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: BACKORDER REPORT <MMDDYY>.xlsx)")
	cmd.Flags().StringVar(&f.sortKey, "sort", "", "Sort key: order-number, salesperson, due-date or dock")
	cmd.Flags().StringVar(&f.history, "history", "", "Report history directory (default from config)")
	return cmd
}

func newLocateHistoryCmd(g *globalFlags) *cobra.Command {
	var history, date string
	var lookback int

	cmd := &cobra.Command{
		Use:   "locate-history",
		Short: "Show which prior report a living run would read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}
			if history == "" {
				history = cfg.HistoryDir
			}
			if lookback < 1 {
				lookback = cfg.LookbackDays
			}

			today := time.Now()
			if date != "" {
				if today, err = core.ParseDateStamp(date); err != nil {
					return errors.InvalidInput(fmt.Sprintf("invalid --date %q (want MMDDYY)", date))
				}
			}

			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			name, found, err := carryforward.FindPrior(c.Lister, history, today, lookback)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "No prior report in %s within %d days of %s\n", history, lookback, core.DateStamp(today))
				return nil
			}
			fmt.Fprintf(out, "Prior report: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&history, "history", "", "Report history directory (default from config)")
	cmd.Flags().StringVar(&date, "date", "", "Pretend today is this MMDDYY date")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "Days to look back (default from config)")
	return cmd
}

func runReport(cmd *cobra.Command, g *globalFlags, f runFlags, args []string, living bool) error {
	cfg, err := config.Load(g.configFile)
	if err != nil {
		return err
	}
	input := cfg.InputFile
	if len(args) > 0 {
		input = args[0]
	}
	output := f.output
	if output == "" {
		output = cfg.OutputFile
	}

	sortKey := cfg.ParsedSortKey()
	if f.sortKey != "" {
		if sortKey, err = parseSortKey(f.sortKey); err != nil {
			return err
		}
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	svc := c.ReportService
	if g.quiet {
		svc = svc.Quiet()
	}

	out := cmd.OutOrStdout()
	req := app.Request{
		InputPath:  input,
		OutputPath: output,
		SortKey:    sortKey,
		Progress: func(percent int, status string) {
			if !g.quiet {
				fmt.Fprintf(out, "[%3d%%] %s\n", percent, status)
			}
		},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var res *app.Result
	if living {
		res, err = svc.Living(ctx, app.LivingRequest{Request: req, HistoryDir: f.history})
	} else {
		res, err = svc.Generate(ctx, app.GenerateRequest{Request: req})
	}
	if err != nil {
		return err
	}

	printResult(out, res)
	return nil
}

func printResult(w io.Writer, res *app.Result) {
	fmt.Fprintf(w, "Report saved: %s\n", res.OutputPath)
	fmt.Fprintf(w, "MILITARY: %d  COMMERCIAL: %d\n", res.Military, res.Commercial)
	if res.Prior.Found {
		fmt.Fprintf(w, "Carried forward from %s (%d matched)\n", res.Prior.PriorPath, res.Prior.Matched)
	}
	for _, line := range res.Summary.Lines() {
		fmt.Fprintln(w, line)
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(w, "%d warning(s):\n", n)
		for _, e := range res.Warnings {
			fmt.Fprintf(w, "  %s\n", e.String())
		}
	}
}

func reportFailure(w io.Writer, err error) {
	var se *app.StageError
	if stderrors.As(err, &se) {
		fmt.Fprintf(w, "Report failed during %s\n", se.Stage)
		fmt.Fprintf(w, "Cause: %v\n", se.Err)
		if se.File != "" {
			fmt.Fprintf(w, "File: %s (rows=%d, columns=%d)\n", se.File, se.Rows, se.Columns)
		}
		if core.IsStructuralError(se.Err) {
			fmt.Fprintln(w, "No report was written. Check the input file and try again.")
		}
		if se.LogPath != "" {
			fmt.Fprintf(w, "Details written to: %s\n", se.LogPath)
		}
		return
	}
	fmt.Fprintf(w, "Error [%s]: %v\n", errors.GetCode(err), err)
}

func parseSortKey(s string) (order.SortKey, error) {
	k, err := order.ParseSortKey(s)
	if err != nil {
		return "", errors.WithCode(errors.CodeInvalidInput, err)
	}
	return k, nil
}
