package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"busheadway/logging"
	"busheadway/model"
	"busheadway/sim"
)

// Options carries everything a headless study needs.
type Options struct {
	Line         model.Line
	Horizon      float64 // minutes
	Hours        int     // hour buckets for the A-headway profile
	Seed         *int64  // nil = seed from the clock
	Replications int
	Checkpoints  []int
	NoPassing    bool // policy for RunReplications callers that pick one
	Workers      int  // > 0 switches to per-replication seeded streams
	MaxTrips     int
}

// ReplicationResult aggregates one policy's replications.
type ReplicationResult struct {
	NoPassing   bool             `json:"no_passing"`
	PerRun      []float64        `json:"per_run_mean_headway"`
	Mean        float64          `json:"mean"`
	StdDev      float64          `json:"std_dev"`
	Checkpoints []sim.Checkpoint `json:"checkpoints"`
	Convergence sim.Convergence  `json:"convergence"`
}

// Summary is the outcome of a full study.
type Summary struct {
	Seed           int64             `json:"seed"`
	HorizonMinutes float64           `json:"horizon_minutes"`
	Replications   int               `json:"replications"`
	HourlyA        []float64         `json:"hourly_mean_headway_a"`
	FreeOvertaking ReplicationResult `json:"free_overtaking"`
	NoPassing      ReplicationResult `json:"no_passing"`
	Elapsed        time.Duration     `json:"-"`
}

// Study runs the phases of a headway study on one random stream so a single
// seed reproduces the whole study.
type Study struct {
	opt    Options
	seed   int64
	rng    *sim.Source
	logger *slog.Logger
}

// NewStudy resolves the seed and prepares the shared stream.
func NewStudy(opt Options, logger *slog.Logger) *Study {
	seed := time.Now().UnixNano()
	if opt.Seed != nil {
		seed = *opt.Seed
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Study{opt: opt, seed: seed, rng: sim.NewSource(seed), logger: logger}
}

// Seed returns the seed the study runs from.
func (st *Study) Seed() int64 { return st.seed }

func (st *Study) simulator(noPassing bool) *sim.Simulator {
	s := sim.NewSimulator(st.opt.Line, st.rng, noPassing)
	s.MaxTrips = st.opt.MaxTrips
	s.OnEvent = logging.EventTracer(st.logger)
	return s
}

// Single runs one replication and returns its full timeline.
func (st *Study) Single(noPassing bool) (model.Timeline, error) {
	tl, err := st.simulator(noPassing).Run(st.opt.Horizon)
	if err != nil {
		return tl, fmt.Errorf("single replication: %w", err)
	}
	st.logger.Info("single replication", "buses", tl.Len(), "no_passing", noPassing,
		"mean_b_headway", sim.Mean(sim.Headways(tl.BDepartures)))
	return tl, nil
}

// Hourly runs one free-overtaking replication and profiles the mean A
// headway per simulated hour.
func (st *Study) Hourly() ([]float64, error) {
	tl, err := st.simulator(false).Run(st.opt.Horizon)
	if err != nil {
		return nil, fmt.Errorf("hourly profile: %w", err)
	}
	hourly := sim.HourlyMeanHeadways(tl.ADepartures, st.opt.Hours)
	st.logger.Info("hourly headways at A", "hours", len(hourly), "buses", tl.Len())
	return hourly, nil
}

// Replications runs the configured number of replications under one policy
// and derives checkpoint and convergence statistics.
func (st *Study) Replications(ctx context.Context, noPassing bool) (ReplicationResult, error) {
	res := ReplicationResult{NoPassing: noPassing}
	start := time.Now()

	var err error
	if st.opt.Workers > 0 {
		res.PerRun, err = sim.ParallelPerRunMeanHeadways(ctx, sim.ParallelOptions{
			Line:         st.opt.Line,
			BaseSeed:     st.seed,
			Horizon:      st.opt.Horizon,
			Replications: st.opt.Replications,
			NoPassing:    noPassing,
			MaxTrips:     st.opt.MaxTrips,
			Workers:      st.opt.Workers,
		})
	} else {
		res.PerRun, err = sim.PerRunMeanHeadways(st.simulator(noPassing), st.opt.Horizon, st.opt.Replications)
	}
	if err != nil {
		return res, fmt.Errorf("replications (no_passing=%t): %w", noPassing, err)
	}
	for i, m := range res.PerRun {
		st.logger.Debug("replication", "run", i+1, "no_passing", noPassing, "mean_b_headway", m)
	}

	res.Mean, res.StdDev, err = sim.SummaryAt(len(res.PerRun), res.PerRun)
	if err != nil {
		return res, err
	}
	res.Checkpoints, err = sim.Checkpoints(res.PerRun, st.opt.Checkpoints)
	if err != nil {
		return res, err
	}
	res.Convergence = sim.ConvergenceSeries(res.PerRun)

	st.logger.Info("replications complete", "runs", len(res.PerRun), "no_passing", noPassing,
		"mean", res.Mean, "std_dev", res.StdDev, "elapsed", time.Since(start))
	return res, nil
}

// Run executes the full study: the hourly A profile, free-overtaking
// replications with checkpoints and convergence, then the no-passing
// replications. Phases share the study's stream in that order.
func (st *Study) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{Seed: st.seed, HorizonMinutes: st.opt.Horizon, Replications: st.opt.Replications}
	st.logger.Info("study started", "seed", st.seed, "horizon_min", st.opt.Horizon,
		"replications", st.opt.Replications, "workers", st.opt.Workers)

	var err error
	if sum.HourlyA, err = st.Hourly(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if sum.FreeOvertaking, err = st.Replications(ctx, false); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if sum.NoPassing, err = st.Replications(ctx, true); err != nil {
		return sum, err
	}

	sum.Elapsed = time.Since(start)
	st.logger.Info("study finished", "elapsed", sum.Elapsed)
	return sum, nil
}
