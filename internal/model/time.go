package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Backend timestamps are sent without a zone
var localTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LocalTime is a timestamp that tolerates zone-less backend formats
type LocalTime struct {
	time.Time
}

// UnmarshalJSON accepts null, RFC 3339 and zone-less layouts
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range localTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON writes the zone-less layout the backend expects
func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

// String renders the date, or an empty string when unset
func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
