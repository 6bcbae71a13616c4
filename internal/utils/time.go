package utils

import "time"

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t as an ISO-8601 UTC string with milliseconds.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NextTimestamp returns a timestamp for now that is strictly after prev.
// An unparseable or empty prev is ignored.
func NextTimestamp(prev string, now time.Time) string {
	now = now.UTC().Truncate(time.Millisecond)
	if prev != "" {
		if last, err := time.Parse(time.RFC3339Nano, prev); err == nil && !now.After(last) {
			now = last.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
		}
	}
	return Timestamp(now)
}
