// Package alert prints alerts to the console, dropping bursts above a fixed rate.
package alert

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"
)

// HighCPUMessage is printed when the predicted CPU exceeds the threshold.
const HighCPUMessage = "PREDICTIVE ALERT: High CPU expected - Pre-scaling initiated"

// Config controls alert throttling.
type Config struct {
	// Every is the sustained interval between delivered alerts
	// Default: 1 minute
	Every time.Duration `yaml:"every"`

	// Burst is how many alerts can be delivered back to back
	// Default: 3
	Burst int `yaml:"burst"`
}

// DefaultConfig returns the default throttling settings
func DefaultConfig() Config {
	return Config{
		Every: time.Minute,
		Burst: 3,
	}
}

// Validate checks the throttling settings
func (c Config) Validate() error {
	if c.Every <= 0 {
		return fmt.Errorf("alert interval must be positive, got %v", c.Every)
	}
	if c.Burst < 1 {
		return fmt.Errorf("alert burst must be at least 1, got %d", c.Burst)
	}
	return nil
}

// Notifier writes alerts to a console sink.
type Notifier struct {
	mu         sync.Mutex
	out        io.Writer
	limiter    *rate.Limiter
	now        func() time.Time
	style      *color.Color
	suppressed int // since the last delivered alert
	delivered  int
	dropped    int
}

// NewNotifier creates a notifier writing to out
func NewNotifier(out io.Writer, cfg Config) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Notifier{
		out:     out,
		limiter: rate.NewLimiter(rate.Every(cfg.Every), cfg.Burst),
		now:     time.Now,
		style:   color.New(color.FgRed, color.Bold),
	}, nil
}

// SetClock overrides the clock used for throttling
func (n *Notifier) SetClock(now func() time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.now = now
}

// Notify prints msg unless the rate is exceeded. It returns whether the alert
// was delivered. The first alert after a suppressed run reports how many were dropped.
func (n *Notifier) Notify(msg string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.limiter.AllowN(n.now(), 1) {
		n.suppressed++
		n.dropped++
		return false
	}

	_, _ = n.style.Fprintln(n.out, msg)
	if n.suppressed > 0 {
		fmt.Fprintf(n.out, "Alert: %d similar alert(s) suppressed\n", n.suppressed)
		n.suppressed = 0
	}
	n.delivered++
	return true
}

// Stats returns how many alerts were delivered and dropped so far
func (n *Notifier) Stats() (delivered, dropped int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.delivered, n.dropped
}
