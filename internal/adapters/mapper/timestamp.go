package mapper

import (
	"encoding/json"
	"math"
	"time"
)

// Timestamp normalizes the three timestamp shapes found in stored
// documents: an RFC3339 (or date-only) string, a numeric epoch value in
// seconds, or a {seconds,nanos} object. Unrecognized values decode to the
// zero time instead of failing.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON always emits RFC3339 UTC
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts the three stored shapes
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		ts.Time = parseTimeString(v)
	case float64:
		sec, frac := math.Modf(v)
		ts.Time = time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
	case map[string]interface{}:
		var sec, nanos int64
		if s, ok := v["seconds"].(float64); ok {
			sec = int64(s)
		}
		if n, ok := v["nanos"].(float64); ok {
			nanos = int64(n)
		} else if n, ok := v["nanoseconds"].(float64); ok {
			nanos = int64(n)
		}
		ts.Time = time.Unix(sec, nanos).UTC()
	default:
		ts.Time = time.Time{}
	}

	return nil
}

func parseTimeString(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseDateTime combines a date-only string with an optional HH:MM
// time-of-day into a single point in time (UTC). An empty time component
// yields midnight.
func ParseDateTime(date, clock string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, err
	}
	if clock == "" {
		return d.UTC(), nil
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}
