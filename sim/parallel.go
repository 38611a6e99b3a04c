package sim

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"busheadway/model"
	"golang.org/x/sync/errgroup"
)

// ReplicationSeed derives the seed of replication index from baseSeed.
// The same pair always yields the same seed.
func ReplicationSeed(baseSeed int64, index int) int64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d", baseSeed, index)))
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}

// ParallelOptions configures ParallelPerRunMeanHeadways.
type ParallelOptions struct {
	Line         model.Line
	BaseSeed     int64
	Horizon      float64 // minutes
	Replications int
	NoPassing    bool
	MaxTrips     int
	Workers      int // <= 0 runs one goroutine per replication
}

// ParallelPerRunMeanHeadways runs replications concurrently. Each replication
// draws from its own stream seeded by ReplicationSeed, so the result depends
// on BaseSeed only, never on Workers or scheduling. Results are ordered by
// replication index.
func ParallelPerRunMeanHeadways(ctx context.Context, opt ParallelOptions) ([]float64, error) {
	out := make([]float64, opt.Replications)
	g, ctx := errgroup.WithContext(ctx)
	if opt.Workers > 0 {
		g.SetLimit(opt.Workers)
	}
	for r := 0; r < opt.Replications; r++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := NewSimulator(opt.Line, NewSource(ReplicationSeed(opt.BaseSeed, r)), opt.NoPassing)
			s.MaxTrips = opt.MaxTrips
			m, err := MeanBHeadway(s, opt.Horizon)
			if err != nil {
				return fmt.Errorf("replication %d: %w", r+1, err)
			}
			out[r] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
