package interfaces

import "time"

// TimeProvider supplies the current time for record timestamps and expiry.
// Tests inject a controllable clock.
type TimeProvider interface {
	Now() time.Time
}
