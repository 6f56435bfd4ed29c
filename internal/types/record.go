package types

import (
	"fmt"
	"time"
)

// TimeLayout is the wall-clock format persisted in cart records. Second
// resolution: two saves inside the same second compare equal, and the
// reconciliation tie-break applies.
const TimeLayout = "2006-01-02 15:04:05"

// CartRecord is the serialized cart shape shared by the session and durable
// stores. Items keep their raw record form so strict key checking happens in
// FromRecord, not during JSON decoding.
type CartRecord struct {
	Items     []map[string]any   `json:"items"`
	Lines     map[string]float64 `json:"lines"`
	Meta      map[string]any     `json:"meta,omitempty"`
	UpdatedAt string             `json:"updated_at"`
}

// Time parses the record's updated_at stamp.
func (r *CartRecord) Time() (time.Time, error) {
	t, err := time.Parse(TimeLayout, r.UpdatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid updated_at %q: %w", r.UpdatedAt, err)
	}
	return t, nil
}

// FormatTime renders a timestamp in the persisted layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
