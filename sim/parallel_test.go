package sim

import (
	"context"
	"errors"
	"testing"

	"busheadway/model"
)

func TestReplicationSeedDeterministic(t *testing.T) {
	t.Parallel()

	if ReplicationSeed(7, 3) != ReplicationSeed(7, 3) {
		t.Fatal("expected the same seed for the same base and index")
	}
	if ReplicationSeed(7, 3) == ReplicationSeed(7, 4) {
		t.Error("expected distinct seeds across replications")
	}
	if ReplicationSeed(7, 3) == ReplicationSeed(8, 3) {
		t.Error("expected distinct seeds across base seeds")
	}
	for i := 0; i < 100; i++ {
		if ReplicationSeed(-5, i) < 0 {
			t.Fatalf("replication %d: negative seed", i)
		}
	}
}

func TestParallelIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	opt := ParallelOptions{
		Line:         model.DefaultLine(),
		BaseSeed:     2025,
		Horizon:      300,
		Replications: 16,
	}
	var results [][]float64
	for _, workers := range []int{0, 1, 4} {
		opt.Workers = workers
		got, err := ParallelPerRunMeanHeadways(context.Background(), opt)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if len(got) != opt.Replications {
			t.Fatalf("workers=%d: expected %d results, got %d", workers, opt.Replications, len(got))
		}
		results = append(results, got)
	}
	for _, other := range results[1:] {
		for i := range results[0] {
			if other[i] != results[0][i] {
				t.Fatalf("replication %d depends on worker count: %v vs %v", i+1, other[i], results[0][i])
			}
		}
	}
}

func TestParallelMatchesSequentialPerReplication(t *testing.T) {
	t.Parallel()

	opt := ParallelOptions{Line: model.DefaultLine(), BaseSeed: 9, Horizon: 120, Replications: 5, NoPassing: true, Workers: 2}
	got, err := ParallelPerRunMeanHeadways(context.Background(), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for r := 0; r < opt.Replications; r++ {
		s := NewSimulator(opt.Line, NewSource(ReplicationSeed(opt.BaseSeed, r)), true)
		want, err := MeanBHeadway(s, opt.Horizon)
		if err != nil {
			t.Fatalf("replication %d: %v", r+1, err)
		}
		if got[r] != want {
			t.Errorf("replication %d: got %v, want %v", r+1, got[r], want)
		}
	}
}

func TestParallelCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParallelPerRunMeanHeadways(ctx, ParallelOptions{Line: model.DefaultLine(), Horizon: 60, Replications: 4})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallelTripLimit(t *testing.T) {
	t.Parallel()

	_, err := ParallelPerRunMeanHeadways(context.Background(), ParallelOptions{
		Line: model.DefaultLine(), BaseSeed: 1, Horizon: 300, Replications: 3, MaxTrips: 2,
	})
	if !errors.Is(err, ErrTripLimit) {
		t.Errorf("expected ErrTripLimit, got %v", err)
	}
}
