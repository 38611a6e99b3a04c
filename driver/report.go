package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"busheadway/model"
	"busheadway/sim"
)

// nowFunc stamps report file names (override in tests).
var nowFunc = time.Now

// ReportPath resolves where a CSV report is written.
// If reportPath is a directory, a timestamped file is created inside it.
// If reportPath is a file, a timestamp is suffixed before the extension.
func ReportPath(reportPath string) string {
	ts := nowFunc().Format("20060102-150405")
	if fi, err := os.Stat(reportPath); err == nil && fi.IsDir() {
		return filepath.Join(reportPath, fmt.Sprintf("report-%s.csv", ts))
	}
	ext := filepath.Ext(reportPath)
	base := reportPath[:len(reportPath)-len(ext)]
	return fmt.Sprintf("%s-%s%s", base, ts, ext)
}

// WriteCSVReport writes one row per replication of each result with its mean
// B headway and the running mean/variance up to that replication. It returns
// the file written, or "" when reportPath is empty.
func WriteCSVReport(reportPath string, results ...ReplicationResult) (string, error) {
	if reportPath == "" {
		return "", nil
	}
	outPath := ReportPath(reportPath)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := writeCSV(f, results); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return outPath, nil
}

func writeCSV(w io.Writer, results []ReplicationResult) error {
	if _, err := fmt.Fprintln(w, "replication,no_passing,mean_headway,cum_mean,cum_variance"); err != nil {
		return err
	}
	for _, res := range results {
		for i, m := range res.PerRun {
			if _, err := fmt.Fprintf(w, "%d,%t,%.6f,%.6f,%.6f\n", i+1, res.NoPassing, m,
				res.Convergence.Means[i], res.Convergence.Variances[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintConsoleReport prints a human-readable study report.
func PrintConsoleReport(w io.Writer, sum Summary) {
	fmt.Fprintln(w, "=== Headway Study Report ===")
	fmt.Fprintf(w, "Seed: %d\n", sum.Seed)
	fmt.Fprintf(w, "Horizon: %.0f minutes, %d replications\n", sum.HorizonMinutes, sum.Replications)
	fmt.Fprintln(w)
	PrintHourly(w, sum.HourlyA)
	fmt.Fprintln(w)
	PrintReplications(w, sum.FreeOvertaking)
	fmt.Fprintln(w)
	PrintReplications(w, sum.NoPassing)
}

// PrintHourly prints the mean A-departure headway of every simulated hour.
func PrintHourly(w io.Writer, hourly []float64) {
	fmt.Fprintln(w, "Hourly average departure headway at A (min):")
	for h, v := range hourly {
		fmt.Fprintf(w, "  hour %d: %.2f\n", h, v)
	}
}

// PrintReplications prints checkpoints and the convergence series of one policy.
func PrintReplications(w io.Writer, res ReplicationResult) {
	policy := "free overtaking"
	if res.NoPassing {
		policy = "no passing"
	}
	fmt.Fprintf(w, "B-departure headway, %s (%d runs): Mean = %.2f, Std Dev = %.2f\n",
		policy, len(res.PerRun), res.Mean, res.StdDev)
	for _, cp := range res.Checkpoints {
		fmt.Fprintf(w, "  First %d simulations: Mean = %.2f, Std Dev = %.2f\n", cp.Runs, cp.Mean, cp.StdDev)
	}
	fmt.Fprintln(w, "  run  mean    cum_mean  cum_var")
	for i, m := range res.PerRun {
		fmt.Fprintf(w, "  %3d  %6.3f  %8.3f  %7.4f\n", i+1, m, res.Convergence.Means[i], res.Convergence.Variances[i])
	}
}

// PrintTimeline prints one replication bus by bus.
func PrintTimeline(w io.Writer, tl model.Timeline) {
	fmt.Fprintln(w, "bus  depart_A  arrive_B  depart_B")
	for i := 0; i < tl.Len(); i++ {
		fmt.Fprintf(w, "%3d  %8.2f  %8.2f  %8.2f\n", i+1, tl.ADepartures[i], tl.BArrivals[i], tl.BDepartures[i])
	}
	fmt.Fprintf(w, "Mean headway at A: %.2f min\n", sim.Mean(sim.Headways(tl.ADepartures)))
	fmt.Fprintf(w, "Mean headway at B: %.2f min (std dev %.2f)\n",
		sim.Mean(sim.Headways(tl.BDepartures)), sim.PopulationStdDev(sim.Headways(tl.BDepartures)))
}
