package model

// Timeline holds one replication's event times, index-aligned by bus.
type Timeline struct {
	ADepartures []float64 `json:"a_departures"`
	BArrivals   []float64 `json:"b_arrivals"`
	BDepartures []float64 `json:"b_departures"`
}

// Append records a completed trip.
func (tl *Timeline) Append(t Trip) {
	tl.ADepartures = append(tl.ADepartures, t.DepartA)
	tl.BArrivals = append(tl.BArrivals, t.ArriveB)
	tl.BDepartures = append(tl.BDepartures, t.DepartB)
}

// Len returns the number of buses recorded.
func (tl Timeline) Len() int { return len(tl.ADepartures) }

// LastBDeparture returns the most recent departure from B, if any.
func (tl Timeline) LastBDeparture() (float64, bool) {
	if len(tl.BDepartures) == 0 {
		return 0, false
	}
	return tl.BDepartures[len(tl.BDepartures)-1], true
}
