package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds health checks in registration order and runs them.
type Registry struct {
	mu     sync.RWMutex
	checks []Check
	byName map[string]Check
	now    func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Check),
		now:    time.Now,
	}
}

// NewDefaultRegistry creates a registry holding DefaultChecks.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range DefaultChecks() {
		// Default names are unique
		_ = r.Register(c)
	}
	return r
}

// SetClock overrides the clock used to stamp reports.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Register adds a check to the registry.
func (r *Registry) Register(check Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := check.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("check %q already registered", name)
	}

	r.checks = append(r.checks, check)
	r.byName[name] = check
	return nil
}

// Get returns a registered check by name.
func (r *Registry) Get(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	check, exists := r.byName[name]
	return check, exists
}

// Names returns all registered check names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		names = append(names, c.Name())
	}
	return names
}

// Run executes the registered checks in order and returns the report.
// Debug-only checks are skipped unless debug is true.
// Checks not yet started when ctx is cancelled are skipped.
func (r *Registry) Run(ctx context.Context, debug bool) *Report {
	r.mu.RLock()
	checks := make([]Check, len(r.checks))
	copy(checks, r.checks)
	now := r.now
	r.mu.RUnlock()

	started := now()
	report := &Report{
		ID:        uuid.New().String(),
		CheckedAt: started,
		Debug:     debug,
	}

	for _, c := range checks {
		if c.DebugOnly() && !debug {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		report.Results = append(report.Results, c.Run(ctx))
	}

	report.Status = Summarize(report.Results)
	report.Duration = now().Sub(started)
	return report
}
