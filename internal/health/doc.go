// Package health provides the simulated system health checks run by the monitor.
//
// # Checks
//
// A Check reports one reading, such as "CPU usage: Normal". The standard set is:
//
//	CPU usage     Normal
//	Memory usage  Normal
//	Disk space    Adequate
//	Hot reload    Active   (debug only)
//	Debug port    9229     (debug only)
//
// None of the checks inspect the host. They exist to drive the monitor output.
//
// # Registry
//
// Checks are kept in a Registry in registration order:
//
//	reg := health.NewDefaultRegistry()
//	report := reg.Run(ctx, cfg.DebugMode)
//	if !report.Healthy() {
//	    // at least one check failed
//	}
//
// Every run gets a fresh UUID so it can be correlated with stored history.
package health
