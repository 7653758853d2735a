// Package clock provides the time source for benchmark measurement
// windows. Where the platform allows it, readings report the process's
// user CPU time so that recorded durations discount other runnable work;
// elsewhere they fall back to the monotonic wall clock.
package clock

// Now returns the current reading in seconds. Readings are comparable
// only against other readings from the same process.
func Now() float64 {
	return now()
}
