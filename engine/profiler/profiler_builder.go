package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are reported. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the interval
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithReporter replaces the default log reporter.
//
// Parameters:
//   - report: called with each window's stats
//
// Returns:
//   - ProfilerBuilderOption: a function that sets the reporter
func WithReporter(report func(Stats)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.report = report
	}
}
