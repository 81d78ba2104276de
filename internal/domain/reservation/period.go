package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEndNotAfterStart = errors.New("end date must be after start date")
	ErrStartInPast      = errors.New("start date cannot be in the past")
)

// Period is a half-open interval [start, end) in UTC.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, ErrEndNotAfterStart
	}
	return Period{start: start.UTC(), end: end.UTC()}, nil
}

func (p Period) Start() time.Time { return p.start }

func (p Period) End() time.Time { return p.end }

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Overlaps reports whether two half-open periods share any instant.
// Touching periods, where one ends exactly when the other starts, do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) StartsBefore(t time.Time) bool {
	return p.start.Before(t)
}

func (p Period) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339Nano), p.end.Format(time.RFC3339Nano))
}
