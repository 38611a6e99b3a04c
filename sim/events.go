package sim

// Event is a marker for all simulation events emitted by Simulator.
type Event interface{ isEvent() }

// DepartAEvent records a bus leaving stop A.
type DepartAEvent struct {
	Bus  int
	Time float64
}

func (DepartAEvent) isEvent() {}

// ArriveBEvent records a bus reaching stop B. When Held is set the bus
// queued behind its predecessor and Unconstrained is the arrival it would
// have made on a free road.
type ArriveBEvent struct {
	Bus           int
	Time          float64
	Unconstrained float64
	Held          bool
}

func (ArriveBEvent) isEvent() {}

// DepartBEvent records a bus leaving stop B after its dwell.
type DepartBEvent struct {
	Bus   int
	Time  float64
	Dwell float64
}

func (DepartBEvent) isEvent() {}

// DoneEvent signals the end of a replication.
type DoneEvent struct {
	Buses       int
	Held        int
	NextDepartA float64 // first departure past the horizon, not recorded
}

func (DoneEvent) isEvent() {}
