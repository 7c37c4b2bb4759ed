package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/monitoring"
	"github.com/kilianp07/dispatchsim/pkg/export"
)

var (
	outPath      string
	outFormat    string
	costsPath    string
	serveMetrics string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank the portfolio and dispatch it against the demand series",
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the dispatch report to this file")
	runCmd.Flags().StringVar(&outFormat, "format", "csv", "report format: csv or json")
	runCmd.Flags().StringVar(&costsPath, "costs", "", "write the per-asset cost summary as csv")
	runCmd.Flags().StringVar(&serveMetrics, "serve-metrics", "", "serve /metrics on this address and wait for a signal")
	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	if outFormat != "csv" && outFormat != "json" {
		return fmt.Errorf("unknown format %q", outFormat)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)
	defer monitoring.Recover()
	svc.ServeMetrics(ctx, serveMetrics)

	res, err := svc.Run(ctx)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"scenario": svc.Name(), "command": "run"})
		return err
	}
	if err := printSummary(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	report := svc.Groups.Log().Report()
	if outPath != "" {
		err := writeFile(outPath, func(w io.Writer) error {
			if outFormat == "json" {
				return export.WriteJSON(w, report)
			}
			return export.WriteCSV(w, report)
		})
		if err != nil {
			return err
		}
	}
	if costsPath != "" {
		if err := writeFile(costsPath, func(w io.Writer) error {
			return export.WriteCostsCSV(w, svc.Groups.Log().AnnualCosts())
		}); err != nil {
			return err
		}
	}
	if serveMetrics != "" {
		<-ctx.Done()
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, res coremetrics.RunResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario\t%s\trun\t%s\n", res.Scenario, res.RunID)
	fmt.Fprintf(tw, "periods\t%d\tdemand\t%.3f\n", res.Periods, res.Demand)
	fmt.Fprintf(tw, "unserved\t%.3f\tcapacity\t%.3f\n", res.Unserved, res.TotalCapacity)
	fmt.Fprintf(tw, "annual cost\t%.2f\tlevelized\t%s\n\n", res.AnnualCost, levelized(res.LevelizedCost))
	fmt.Fprintln(tw, "#\tasset\tcategory\ttechnology\tcapacity\tenergy\tannual cost\tlevelized")
	for _, a := range res.Assets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.3f\t%.3f\t%.2f\t%s\n",
			a.Position+1, a.Asset, a.Category, a.Technology, a.Capacity, a.Energy, a.AnnualCost, levelized(a.LevelizedCost))
	}
	return tw.Flush()
}

func levelized(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}
