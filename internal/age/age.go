// Package age computes elapsed time for display.
package age

import "time"

// AgeData returns how long ago then was, clamped at zero. It reports
// false when then is unset.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	elapsed := now.Sub(then)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, true
}
