package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// ErrInvalidInterval is returned when an interval does not satisfy start < end.
// Cross-midnight intervals are not supported.
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// TimeInterval is a half-open wall-clock interval [Start, End).
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeInterval parses and validates an interval.
// Malformed times return types.ErrInvalidFormat, end <= start returns ErrInvalidInterval.
func NewTimeInterval(start, end string) (TimeInterval, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeInterval{}, err
	}

	interval := TimeInterval{Start: s, End: e}
	if err := interval.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return interval, nil
}

// Bounds returns the interval in minutes since midnight.
func (i TimeInterval) Bounds() (start, end int, err error) {
	start, err = i.Start.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err = i.End.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Validate checks format and ordering.
func (i TimeInterval) Validate() error {
	start, end, err := i.Bounds()
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, i.Start, i.End)
	}
	return nil
}

// Overlaps reports whether two intervals intersect. Touching intervals do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	s1, e1, err := i.Bounds()
	if err != nil {
		return false
	}
	s2, e2, err := other.Bounds()
	if err != nil {
		return false
	}
	return Overlaps(s1, e1, s2, e2)
}

// Contains reports whether other lies fully inside i.
func (i TimeInterval) Contains(other TimeInterval) bool {
	s1, e1, err := i.Bounds()
	if err != nil {
		return false
	}
	s2, e2, err := other.Bounds()
	if err != nil {
		return false
	}
	return s1 <= s2 && e2 <= e1
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// Overlaps is the half-open overlap test on minute offsets.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
