package model

import "fmt"

// Line models the A -> B corridor: travel time A->B, dwell at B and
// inter-departure spacing at A, all in minutes.
type Line struct {
	Name         string  `json:"name"`
	TravelMean   float64 `json:"travel_mean_min"`
	TravelStdDev float64 `json:"travel_stddev_min"`
	DwellMin     float64 `json:"dwell_min_min"`
	DwellMax     float64 `json:"dwell_max_min"`
	MeanHeadway  float64 `json:"mean_headway_min"`
}

// DefaultLine returns the reference corridor: Normal(35, 7) travel,
// Uniform(2, 4) dwell and exponential departures every 6 minutes on average.
func DefaultLine() Line {
	return Line{
		Name:         "A-B",
		TravelMean:   35,
		TravelStdDev: 7,
		DwellMin:     2,
		DwellMax:     4,
		MeanHeadway:  6,
	}
}

// ArrivalRate is the exponential rate of departures from A (per minute).
func (l Line) ArrivalRate() float64 {
	if l.MeanHeadway <= 0 {
		return 0
	}
	return 1 / l.MeanHeadway
}

// Validate checks the parameters describe proper distributions.
func (l Line) Validate() error {
	if l.MeanHeadway <= 0 {
		return fmt.Errorf("mean headway must be > 0, got %v", l.MeanHeadway)
	}
	if l.TravelStdDev < 0 {
		return fmt.Errorf("travel stddev must be >= 0, got %v", l.TravelStdDev)
	}
	if l.DwellMin < 0 {
		return fmt.Errorf("dwell min must be >= 0, got %v", l.DwellMin)
	}
	if l.DwellMax < l.DwellMin {
		return fmt.Errorf("dwell max %v below dwell min %v", l.DwellMax, l.DwellMin)
	}
	return nil
}
