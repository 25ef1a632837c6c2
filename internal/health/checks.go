package health

import "context"

// StaticCheck always reports the same reading.
type StaticCheck struct {
	name      string
	value     string
	ok        bool
	debugOnly bool
}

// NewStaticCheck creates a passing check that always reports value.
func NewStaticCheck(name, value string) *StaticCheck {
	return &StaticCheck{name: name, value: value, ok: true}
}

// NewDebugCheck creates a passing check that only runs in debug mode.
func NewDebugCheck(name, value string) *StaticCheck {
	return &StaticCheck{name: name, value: value, ok: true, debugOnly: true}
}

// NewFailingCheck creates a check that always fails with value.
func NewFailingCheck(name, value string) *StaticCheck {
	return &StaticCheck{name: name, value: value}
}

func (c *StaticCheck) Name() string    { return c.name }
func (c *StaticCheck) DebugOnly() bool { return c.debugOnly }

func (c *StaticCheck) Run(ctx context.Context) Result {
	return Result{Name: c.name, Value: c.value, OK: c.ok}
}

// DebugPort is the inspector port reported in debug mode.
const DebugPort = "9229"

// DefaultChecks returns the standard checks in print order.
func DefaultChecks() []Check {
	return []Check{
		NewStaticCheck("CPU usage", "Normal"),
		NewStaticCheck("Memory usage", "Normal"),
		NewStaticCheck("Disk space", "Adequate"),
		NewDebugCheck("Hot reload", "Active"),
		NewDebugCheck("Debug port", DebugPort),
	}
}
