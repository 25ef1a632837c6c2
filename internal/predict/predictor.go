// Package predict produces simulated predictive metrics for the experimental
// monitor. Every value comes from a pseudo-random source; nothing here models
// real load.
package predict

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/devops-monitor/internal/health"
)

// Prediction is a simulated forecast for the predictive window.
type Prediction struct {
	Window     time.Duration
	CPU        float64 // percent, [0,100)
	Memory     float64 // percent, [0,100)
	Traffic    float64 // req/s, [0,1000)
	Confidence float64 // percent, [70,100] after rounding to two decimals
}

// ExceedsCPU reports whether predicted CPU is above threshold percent.
func (p Prediction) ExceedsCPU(threshold int) bool {
	return p.CPU > float64(threshold)
}

// CloudStatus is a simulated per-provider status.
type CloudStatus struct {
	Provider  string
	Instances int     // [5,15)
	Load      float64 // percent, [0,100)
	Health    health.Status
}

// Label returns the provider name upper-cased for display.
func (c CloudStatus) Label() string {
	return strings.ToUpper(c.Provider)
}

// Usage is a simulated host usage snapshot.
type Usage struct {
	CPU    float64
	Memory float64
	Disk   float64
}

// Predictor draws simulated values from a seeded source.
// It is safe for concurrent use.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a predictor seeded with seed. The same seed yields the same sequence.
func New(seed int64) *Predictor {
	return &Predictor{rng: rand.New(rand.NewSource(seed))}
}

// NewFromTime creates a predictor seeded from the current time.
func NewFromTime() *Predictor {
	return New(time.Now().UnixNano())
}

func (p *Predictor) float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

// Predict returns a simulated forecast for window.
func (p *Predictor) Predict(window time.Duration) Prediction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Prediction{
		Window:     window,
		CPU:        p.rng.Float64() * 100,
		Memory:     p.rng.Float64() * 100,
		Traffic:    p.rng.Float64() * 1000,
		Confidence: round2(p.rng.Float64()*30 + 70),
	}
}

// SystemUsage returns simulated CPU, memory, and disk percentages.
func (p *Predictor) SystemUsage() Usage {
	return Usage{
		CPU:    p.float64() * 100,
		Memory: p.float64() * 100,
		Disk:   p.float64() * 100,
	}
}

// CloudStatuses probes every provider concurrently and returns the statuses
// in the order given. Each probe draws from its own source seeded up front,
// so results do not depend on goroutine scheduling.
func (p *Predictor) CloudStatuses(ctx context.Context, providers []string) ([]CloudStatus, error) {
	seeds := make([]int64, len(providers))
	p.mu.Lock()
	for i := range seeds {
		seeds[i] = p.rng.Int63()
	}
	p.mu.Unlock()

	statuses := make([]CloudStatus, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range providers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("probing %s: %w", provider, err)
			}
			statuses[i] = probe(provider, rand.New(rand.NewSource(seeds[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

func probe(provider string, rng *rand.Rand) CloudStatus {
	status := CloudStatus{
		Provider:  provider,
		Instances: rng.Intn(10) + 5,
		Load:      rng.Float64() * 100,
		Health:    health.StatusHealthy,
	}
	if rng.Float64() <= 0.1 {
		status.Health = health.StatusDegraded
	}
	return status
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
