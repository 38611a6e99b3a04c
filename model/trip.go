package model

// Trip is one bus's pass through the corridor. All times are minutes since
// the start of the replication.
type Trip struct {
	Bus           int     `json:"bus"`
	DepartA       float64 `json:"depart_a"`
	Unconstrained float64 `json:"unconstrained_arrival_b"` // DepartA + clamped travel time
	ArriveB       float64 `json:"arrive_b"`
	DepartB       float64 `json:"depart_b"`
	Held          bool    `json:"held"` // arrival pushed back behind the previous bus
}

// TravelTime returns the sampled run time A->B (already clamped to >= 0).
func (t Trip) TravelTime() float64 { return t.Unconstrained - t.DepartA }

// HoldTime returns how long the bus queued behind its predecessor at B.
func (t Trip) HoldTime() float64 {
	if !t.Held {
		return 0
	}
	return t.ArriveB - t.Unconstrained
}

// Dwell returns the time spent stopped at B.
func (t Trip) Dwell() float64 { return t.DepartB - t.ArriveB }
