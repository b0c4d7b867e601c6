// Package clock provides the wall clock used outside tests.
package clock

import "time"

// System reports the current time in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
