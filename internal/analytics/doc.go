// Package analytics derives training metrics from completed workouts:
// estimated one-rep-max series, per-exercise trend classification,
// muscle-group volume distribution, a calendar contribution heatmap, and
// period-over-period comparison.
//
// Every function in this package is pure: it takes an immutable snapshot of
// workouts (plus metadata or a period) and returns plain values. Only
// workouts with StatusCompleted contribute to any result; active and
// cancelled sessions are ignored everywhere. Callers own caching and
// recomputation; results are deterministic for a given input snapshot, so
// they are safe to memoize and safe to compute concurrently.
package analytics
