package schedule

import "time"

// Clock reports elapsed playback time in seconds. Both loops share one clock
// so fire times computed by the fetcher line up with the dispatcher's view.
type Clock func() float64

// NewRunClock returns a Clock anchored at the moment of the call.
func NewRunClock() Clock {
	start := time.Now()
	return func() float64 {
		return time.Since(start).Seconds()
	}
}
