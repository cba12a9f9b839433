package service

import (
	"encoding/json"
	"testing"
	"time"
)

func TestResultJSON(t *testing.T) {
	ok, err := json.Marshal(OK(Deleted{ID: "14"}))
	if err != nil {
		t.Fatalf("marshal ok: %v", err)
	}
	if string(ok) != `{"data":{"id":"14"}}` {
		t.Errorf("ok json = %s", ok)
	}

	failed, err := json.Marshal(Fail[Deleted](newError(CodeNotFound, "Bonus task not found")))
	if err != nil {
		t.Fatalf("marshal fail: %v", err)
	}
	if string(failed) != `{"error":{"code":"NOT_FOUND","message":"Bonus task not found"}}` {
		t.Errorf("fail json = %s", failed)
	}
}

func TestFailNilIsInternal(t *testing.T) {
	r := Fail[int](nil)
	if r.IsOK() {
		t.Fatal("expected failure")
	}
	if r.Err().Code != CodeInternal {
		t.Errorf("code = %s, want INTERNAL", r.Err().Code)
	}
}

func TestErrorString(t *testing.T) {
	e := newError(CodeForbidden, "Only parents can view family")
	if e.Error() != "FORBIDDEN: Only parents can view family" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"default", DefaultConfig(), false},
		{"negative min", Config{MinDelay: -time.Millisecond}, true},
		{"max below min", Config{MinDelay: time.Second, MaxDelay: time.Millisecond}, true},
		{"rate above one", Config{FailureRate: 1.5}, true},
		{"negative rate", Config{FailureRate: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLatencyWithinWindow(t *testing.T) {
	cfg := Config{MinDelay: 150 * time.Millisecond, MaxDelay: 450 * time.Millisecond}
	sim := newSimulator(cfg, nil, func(time.Duration) {})

	for i := 0; i < 500; i++ {
		d := sim.latency()
		if d < cfg.MinDelay || d > cfg.MaxDelay {
			t.Fatalf("latency %s outside [%s, %s]", d, cfg.MinDelay, cfg.MaxDelay)
		}
	}
}

func TestZeroConfigNeverSleepsOrFails(t *testing.T) {
	slept := 0
	sim := newSimulator(Config{}, nil, func(time.Duration) { slept++ })

	for i := 0; i < 100; i++ {
		sim.roundTrip()
		if sim.fault() {
			t.Fatal("zero config must not inject faults")
		}
	}
	if slept != 0 {
		t.Errorf("slept %d times, want 0", slept)
	}
}
