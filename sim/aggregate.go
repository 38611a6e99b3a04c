package sim

import (
	"errors"
	"fmt"
	"math"

	"busheadway/model"
)

// ErrOutOfRange is returned when a checkpoint asks for more replications
// than were run.
var ErrOutOfRange = errors.New("checkpoint out of range")

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PopulationVariance divides by N. Empty and single-element inputs give 0.
func PopulationVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	sq := 0.0
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return sq / float64(len(xs))
}

// PopulationStdDev is the square root of PopulationVariance.
func PopulationStdDev(xs []float64) float64 {
	return math.Sqrt(PopulationVariance(xs))
}

// MeanBHeadway runs one replication and returns its mean headway at B.
func MeanBHeadway(s *Simulator, horizonMinutes float64) (float64, error) {
	tl, err := s.Run(horizonMinutes)
	if err != nil {
		return 0, err
	}
	return Mean(Headways(tl.BDepartures)), nil
}

// PerRunMeanHeadways runs s replications times back to back on its shared
// stream and returns one mean B-headway per run.
func PerRunMeanHeadways(s *Simulator, horizonMinutes float64, replications int) ([]float64, error) {
	out := make([]float64, 0, replications)
	for r := 0; r < replications; r++ {
		m, err := MeanBHeadway(s, horizonMinutes)
		if err != nil {
			return out, fmt.Errorf("replication %d: %w", r+1, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// PerRunMeanHeadwaysWith is PerRunMeanHeadways on the default line.
func PerRunMeanHeadwaysWith(rng Variates, horizonMinutes float64, replications int, noPassing bool) ([]float64, error) {
	return PerRunMeanHeadways(NewSimulator(model.DefaultLine(), rng, noPassing), horizonMinutes, replications)
}

// SummaryAt returns the population mean and standard deviation of the first
// n values of series.
func SummaryAt(n int, series []float64) (mean, stddev float64, err error) {
	if n < 0 || n > len(series) {
		return 0, 0, fmt.Errorf("%w: %d of %d replications", ErrOutOfRange, n, len(series))
	}
	subset := series[:n]
	return Mean(subset), PopulationStdDev(subset), nil
}

// Checkpoint is a SummaryAt result for one prefix length.
type Checkpoint struct {
	Runs   int     `json:"runs"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Checkpoints evaluates SummaryAt for every n in ns.
func Checkpoints(series []float64, ns []int) ([]Checkpoint, error) {
	out := make([]Checkpoint, 0, len(ns))
	for _, n := range ns {
		mean, sd, err := SummaryAt(n, series)
		if err != nil {
			return nil, err
		}
		out = append(out, Checkpoint{Runs: n, Mean: mean, StdDev: sd})
	}
	return out, nil
}

// Convergence holds running statistics: entry i covers the first i+1 runs.
type Convergence struct {
	Means     []float64 `json:"cum_means"`
	Variances []float64 `json:"cum_variances"`
}

// ConvergenceSeries computes the mean and population variance of every
// prefix of series. The variance of the one-run prefix is 0.
func ConvergenceSeries(series []float64) Convergence {
	c := Convergence{
		Means:     make([]float64, len(series)),
		Variances: make([]float64, len(series)),
	}
	for i := 1; i <= len(series); i++ {
		prefix := series[:i]
		c.Means[i-1] = Mean(prefix)
		if i > 1 {
			c.Variances[i-1] = PopulationVariance(prefix)
		} else {
			c.Variances[i-1] = 0
		}
	}
	return c
}
