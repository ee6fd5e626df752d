// Package metrics defines the observability side channel of the evs tools.
// Sinks receive extraction summaries, low-battery observations and battery
// readings; they never influence what the tools write to their output files.
// Several sinks are combined with NewMultiSink.
package metrics
