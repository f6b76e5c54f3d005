package bake

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestPoolSizeClampedToFive(t *testing.T) {
	cases := []struct {
		name string
		max  int
		want int
	}{
		{"unset", 0, defaultPoolWorkers},
		{"negative", -1, defaultPoolWorkers},
		{"withinCap", 3, 3},
		{"atCap", 5, 5},
		{"aboveCap", 20, defaultPoolWorkers},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &Pool{MaxWorkers: c.max}
			if got := p.size(); got != c.want {
				t.Errorf("size() with MaxWorkers=%d = %d, want %d", c.max, got, c.want)
			}
		})
	}
}

// TestRunJobRecoversPanic exercises spec §7 taxonomy #4 ("unexpected
// runtime fault"): a panicking job must be recovered into an error rather
// than crashing the goroutine it runs on, since errgroup.Group does not
// recover panics raised on the goroutines it spawns.
func TestRunJobRecoversPanic(t *testing.T) {
	err := runJob(zap.NewNop(), "someBone", func() error {
		panic("simulated unexpected runtime fault")
	})
	if err == nil {
		t.Fatal("runJob: want an error recovered from the panic, got nil")
	}
	if !strings.Contains(err.Error(), "someBone") || !strings.Contains(err.Error(), "simulated unexpected runtime fault") {
		t.Errorf("runJob error = %q, want it to name the bone and the panic value", err.Error())
	}
}

// TestRunJobPropagatesOrdinaryError confirms the recover wrapper is
// transparent when fn simply returns an error rather than panicking.
func TestRunJobPropagatesOrdinaryError(t *testing.T) {
	want := errors.New("ordinary failure")
	got := runJob(zap.NewNop(), "someBone", func() error { return want })
	if got != want {
		t.Errorf("runJob = %v, want %v", got, want)
	}
}
