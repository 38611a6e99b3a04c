package sim

import (
	"errors"
	"fmt"
	"math"

	"busheadway/model"
)

var (
	// ErrInvalidHorizon is returned for negative or NaN horizons.
	ErrInvalidHorizon = errors.New("invalid horizon")
	// ErrTripLimit is returned when a run would record more trips than MaxTrips.
	ErrTripLimit = errors.New("trip limit exceeded")
)

// Simulator generates single replications of the A -> B line.
type Simulator struct {
	Line      model.Line
	RNG       Variates
	NoPassing bool

	// MaxTrips bounds the number of buses a single run may record.
	// Zero means unbounded.
	MaxTrips int

	// OnEvent, when set, receives every event in simulation order.
	OnEvent func(Event)
}

// NewSimulator constructs a simulator for line drawing from rng.
func NewSimulator(line model.Line, rng Variates, noPassing bool) *Simulator {
	return &Simulator{Line: line, RNG: rng, NoPassing: noPassing}
}

// draws are the three samples taken for one bus, in stream order.
type draws struct {
	run          float64
	dwell        float64
	interArrival float64
}

func (s *Simulator) sample() draws {
	var d draws
	d.run = s.RNG.Normal(s.Line.TravelMean, s.Line.TravelStdDev)
	d.dwell = s.RNG.Uniform(s.Line.DwellMin, s.Line.DwellMax)
	d.interArrival = s.RNG.Exponential(s.Line.ArrivalRate())
	return d
}

// nextTrip folds one bus onto the previous one. prev is nil for the first
// bus of a run; with noPassing the bus cannot reach B before prev left it.
func nextTrip(prev *model.Trip, bus int, departA float64, d draws, noPassing bool) model.Trip {
	run := math.Max(d.run, 0)
	t := model.Trip{Bus: bus, DepartA: departA, Unconstrained: departA + run}
	t.ArriveB = t.Unconstrained
	if noPassing && prev != nil && t.ArriveB < prev.DepartB {
		t.ArriveB = prev.DepartB
		t.Held = true
	}
	t.DepartB = t.ArriveB + d.dwell
	return t
}

// Run simulates departures from A over [0, horizonMinutes] and propagates each
// bus to B. The first bus leaves A at time zero.
func (s *Simulator) Run(horizonMinutes float64) (model.Timeline, error) {
	var tl model.Timeline
	if math.IsNaN(horizonMinutes) || horizonMinutes < 0 {
		return tl, fmt.Errorf("%w: %v minutes", ErrInvalidHorizon, horizonMinutes)
	}

	var prev *model.Trip
	held := 0
	departA := 0.0
	for bus := 1; departA <= horizonMinutes; bus++ {
		if s.MaxTrips > 0 && bus > s.MaxTrips {
			return tl, fmt.Errorf("%w: more than %d buses before t=%.2f", ErrTripLimit, s.MaxTrips, horizonMinutes)
		}
		s.emit(DepartAEvent{Bus: bus, Time: departA})

		d := s.sample()
		trip := nextTrip(prev, bus, departA, d, s.NoPassing)
		if trip.Held {
			held++
		}
		tl.Append(trip)
		s.emit(ArriveBEvent{Bus: bus, Time: trip.ArriveB, Unconstrained: trip.Unconstrained, Held: trip.Held})
		s.emit(DepartBEvent{Bus: bus, Time: trip.DepartB, Dwell: d.dwell})

		prev = &trip
		departA += d.interArrival
	}
	s.emit(DoneEvent{Buses: tl.Len(), Held: held, NextDepartA: departA})
	return tl, nil
}

func (s *Simulator) emit(ev Event) {
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

// Simulate runs one replication of the default line and returns the
// departure times from A and from B. An invalid horizon yields
// ErrInvalidHorizon and nil sequences.
func Simulate(rng Variates, horizonMinutes float64, noPassing bool) (aDepartures, bDepartures []float64, err error) {
	tl, err := NewSimulator(model.DefaultLine(), rng, noPassing).Run(horizonMinutes)
	if err != nil {
		return nil, nil, err
	}
	return tl.ADepartures, tl.BDepartures, nil
}
