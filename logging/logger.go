// Package logging builds the leveled slog.Logger used across busheadway.
// Simulator events are logged at LevelTrace so a single replication can be
// followed bus by bus without flooding normal runs.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"busheadway/sim"
)

// LevelTrace sits below Debug and carries per-bus simulator events.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps "info", "debug" or "trace" (any case) to a slog.Level.
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a supported level. Empty means default.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "info", "debug", "trace":
		return true
	}
	return false
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EventTracer returns a sim.Simulator OnEvent hook that logs every event at
// trace level. Replications are numbered from 1 and advance after each
// DoneEvent, so one hook can follow a simulator across back-to-back runs.
// It returns nil when the logger would drop trace records.
func EventTracer(logger *slog.Logger) func(sim.Event) {
	if logger == nil || !logger.Enabled(context.Background(), LevelTrace) {
		return nil
	}
	ctx := context.Background()
	replication := 1
	return func(ev sim.Event) {
		switch e := ev.(type) {
		case sim.DepartAEvent:
			logger.Log(ctx, LevelTrace, "depart A", "replication", replication, "bus", e.Bus, "t", e.Time)
		case sim.ArriveBEvent:
			logger.Log(ctx, LevelTrace, "arrive B", "replication", replication, "bus", e.Bus, "t", e.Time,
				"unconstrained", e.Unconstrained, "held", e.Held)
		case sim.DepartBEvent:
			logger.Log(ctx, LevelTrace, "depart B", "replication", replication, "bus", e.Bus, "t", e.Time, "dwell", e.Dwell)
		case sim.DoneEvent:
			logger.Log(ctx, LevelTrace, "replication done", "replication", replication, "buses", e.Buses,
				"held", e.Held, "next_depart_a", e.NextDepartA)
			replication++
		}
	}
}
