// Package time is the clock and the timestamp precision the stores persist
package time

import "time"

// Now is the clock used for persisted timestamps, swapped in tests
var Now = func() time.Time { return time.Now() }

// Stamp returns t in UTC at microsecond precision, the finest both backends keep
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// NowStamp is Stamp(Now())
func NowStamp() time.Time { return Stamp(Now()) }

// Max returns the later of a and b
func Max(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// OrNow returns t, or the current stamp when t is zero
func OrNow(t time.Time) time.Time {
	if t.IsZero() {
		return NowStamp()
	}
	return Stamp(t)
}
