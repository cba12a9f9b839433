package service

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// Config controls the simulated transport. The zero value means no latency
// and no injected failures.
type Config struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
}

// DefaultConfig mirrors a household Wi-Fi round trip with occasional hiccups.
func DefaultConfig() Config {
	return Config{
		MinDelay:    150 * time.Millisecond,
		MaxDelay:    450 * time.Millisecond,
		FailureRate: 0.05,
	}
}

func (c Config) Validate() error {
	if c.MinDelay < 0 {
		return fmt.Errorf("min delay must be >= 0, got %s", c.MinDelay)
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max delay %s is below min delay %s", c.MaxDelay, c.MinDelay)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be within [0, 1], got %v", c.FailureRate)
	}
	return nil
}

type simulator struct {
	cfg   Config
	sleep func(time.Duration)

	mu  sync.Mutex
	rnd *rand.Rand
}

func newSimulator(cfg Config, rnd *rand.Rand, sleep func(time.Duration)) *simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &simulator{cfg: cfg, sleep: sleep, rnd: rnd}
}

// latency picks a delay uniformly from [MinDelay, MaxDelay].
func (s *simulator) latency() time.Duration {
	if s.cfg.MaxDelay <= s.cfg.MinDelay {
		return max(s.cfg.MinDelay, 0)
	}
	span := int64(s.cfg.MaxDelay - s.cfg.MinDelay)

	s.mu.Lock()
	n := s.rnd.Int64N(span + 1)
	s.mu.Unlock()

	return s.cfg.MinDelay + time.Duration(n)
}

// roundTrip blocks for one simulated network round trip. It cannot be
// cancelled.
func (s *simulator) roundTrip() {
	if d := s.latency(); d > 0 {
		s.sleep(d)
	}
}

// fault reports whether this call should fail with a transient error.
func (s *simulator) fault() bool {
	if s.cfg.FailureRate <= 0 {
		return false
	}
	s.mu.Lock()
	v := s.rnd.Float64()
	s.mu.Unlock()
	return v < s.cfg.FailureRate
}
