// Package timeutil provides a timestamp that is always handled in UTC with
// second precision.
package timeutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Time marshals as RFC 3339 and unmarshals from either RFC 3339 or Unix
// seconds.
type Time time.Time

func Now() Time {
	return Time(time.Now().UTC().Truncate(time.Second))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == "{}" {
		return nil
	}
	if s[0] != '"' {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("timestamp %s: %w", s, err)
		}
		*t = Time(time.Unix(i, 0).UTC())
		return nil
	}
	tt, err := time.Parse(`"`+time.RFC3339+`"`, s)
	if err != nil {
		return err
	}
	*t = Time(tt.UTC())
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(time.RFC3339)
}
