package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock provides time and timer operations that can be faked for testing.
// It is the subset of clockwork.Clock the application needs, so both the
// real clock and clockwork's fake clock satisfy it.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) clockwork.Timer
	NewTicker(d time.Duration) clockwork.Ticker
}

// New returns a Clock backed by the system clock
func New() Clock {
	return clockwork.NewRealClock()
}

// NewFakeAt returns a fake Clock pinned to the given time, for tests
func NewFakeAt(t time.Time) *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(t)
}
