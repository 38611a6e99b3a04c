package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "busheadway version "+version) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSingleCmdJSON(t *testing.T) {
	out, _, err := execute(t, "single", "--seed", "5", "--horizon", "30m", "--no-passing", "--format", "json")
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	var got struct {
		Seed      int64 `json:"seed"`
		NoPassing bool  `json:"no_passing"`
		Timeline  struct {
			ADepartures []float64 `json:"a_departures"`
			BDepartures []float64 `json:"b_departures"`
		} `json:"timeline"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Seed != 5 || !got.NoPassing {
		t.Errorf("unexpected header: seed %d no_passing %t", got.Seed, got.NoPassing)
	}
	if len(got.Timeline.ADepartures) == 0 || len(got.Timeline.ADepartures) != len(got.Timeline.BDepartures) {
		t.Errorf("unexpected timeline lengths %d/%d", len(got.Timeline.ADepartures), len(got.Timeline.BDepartures))
	}
}

func TestSingleCmdTrace(t *testing.T) {
	_, stderr, err := execute(t, "single", "--seed", "5", "--horizon", "10m", "--trace")
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if !strings.Contains(stderr, "level=TRACE") || !strings.Contains(stderr, "depart A") {
		t.Errorf("expected trace events on stderr, got:\n%s", stderr)
	}
}

func TestReplicateCmd(t *testing.T) {
	out, _, err := execute(t, "replicate", "--seed", "3", "--horizon", "1h",
		"--replications", "4", "--checkpoints", "2,4", "--workers", "2")
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	for _, want := range []string{"free overtaking (4 runs)", "First 2 simulations", "First 4 simulations"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplicateCmdReproducible(t *testing.T) {
	args := []string{"replicate", "--seed", "9", "--horizon", "1h", "--replications", "3",
		"--checkpoints", "3", "--no-passing", "--format", "json"}
	a, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	b, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different output:\n%s\n%s", a, b)
	}
}

func TestReplicateCmdZeroSeedReproducible(t *testing.T) {
	args := []string{"replicate", "--seed", "0", "--horizon", "1h", "--replications", "3",
		"--checkpoints", "3", "--format", "json"}
	a, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	b, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	if a != b {
		t.Errorf("seed 0 produced different output:\n%s\n%s", a, b)
	}
	var got struct {
		Seed int64 `json:"seed"`
	}
	if err := json.Unmarshal([]byte(a), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, a)
	}
	if got.Seed != 0 {
		t.Errorf("expected reported seed 0, got %d", got.Seed)
	}
}

func TestMalformedEnvFails(t *testing.T) {
	t.Setenv("BUSHEADWAY_SEED", "abc")
	if _, _, err := execute(t, "hourly", "--horizon", "1h"); err == nil || !strings.Contains(err.Error(), "BUSHEADWAY_SEED") {
		t.Errorf("expected malformed seed error, got %v", err)
	}
}

func TestStudyCmdWritesCSV(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "study", "--seed", "1", "--horizon", "2h",
		"--replications", "3", "--checkpoints", "1,3", "--csv", dir)
	if err != nil {
		t.Fatalf("study: %v", err)
	}
	if !strings.Contains(out, "=== Headway Study Report ===") {
		t.Errorf("unexpected report:\n%s", out)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "report-*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one CSV report, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	// header + 3 free + 3 no-passing rows
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 7 {
		t.Errorf("expected 7 lines, got %d", n)
	}
}

func TestHourlyCmd(t *testing.T) {
	out, _, err := execute(t, "hourly", "--seed", "4", "--horizon", "3h")
	if err != nil {
		t.Fatalf("hourly: %v", err)
	}
	if !strings.Contains(out, "hour 2:") || strings.Contains(out, "hour 3:") {
		t.Errorf("expected three hour buckets:\n%s", out)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte("seed: 10\nreplications: 2\ncheckpoints: [2]\noutput:\n  format: json\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err := execute(t, "replicate", "--config", path, "--seed", "11", "--horizon", "30m")
	if err != nil {
		t.Fatalf("replicate: %v", err)
	}
	var got struct {
		Seed   int64     `json:"seed"`
		PerRun []float64 `json:"per_run_mean_headway"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Seed != 11 || len(got.PerRun) != 2 {
		t.Errorf("expected flag seed 11 and 2 runs from file, got %d and %d", got.Seed, len(got.PerRun))
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"zero replications", []string{"replicate", "--replications", "0"}, "replications"},
		{"checkpoint beyond runs", []string{"replicate", "--replications", "4", "--checkpoints", "9"}, "out of range"},
		{"bad format", []string{"hourly", "--format", "xml"}, "output format"},
		{"trip cap", []string{"single", "--seed", "2", "--horizon", "5h", "--max-trips", "1"}, "trip limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestExampleConfigCmdRoundTrips(t *testing.T) {
	out, _, err := execute(t, "example-config")
	if err != nil {
		t.Fatalf("example-config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte(out), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := execute(t, "hourly", "--config", path, "--horizon", "1h"); err != nil {
		t.Errorf("example config rejected: %v", err)
	}
}
