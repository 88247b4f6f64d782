package segment

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Segment is a half-open interval [Start, End) of the source timeline, in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Empty reports whether the segment has zero length.
func (s Segment) Empty() bool {
	return s.End <= s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("[%s, %s)", formatSeconds(s.Start), formatSeconds(s.End))
}

// Policy controls how cut points beyond the media duration are treated.
type Policy int

const (
	// Truncate silently drops cut points past the end of the media.
	Truncate Policy = iota
	// Strict rejects the whole request when any cut point exceeds the duration.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Truncate:
		return "truncate"
	default:
		return "policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePolicy maps a user-supplied policy name to a Policy.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "truncate":
		return Truncate, nil
	case "strict":
		return Strict, nil
	default:
		return Truncate, fmt.Errorf("unknown exceed policy %q (expected strict or truncate)", value)
	}
}

var (
	ErrInvalidDuration = errors.New("invalid media duration")
	ErrInvalidCutPoint = errors.New("invalid cut point")
)

// OutOfRangeError reports a cut point past the media duration under the Strict policy.
type OutOfRangeError struct {
	Value    float64
	Duration float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cut point %s exceeds media duration %s",
		formatSeconds(e.Value), formatSeconds(e.Duration))
}

// Split divides [0, duration) into consecutive segments bounded by cuts.
//
// The cut points are sorted on a copy; the caller's slice is left untouched.
// Duplicate cut points are kept and produce zero-length segments. A cut point
// equal to duration is in range.
func Split(duration float64, cuts []float64, policy Policy) ([]Segment, error) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	for _, cut := range cuts {
		if math.IsNaN(cut) || math.IsInf(cut, 0) || cut < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCutPoint, cut)
		}
	}

	points := slices.Clone(cuts)
	slices.Sort(points)

	switch policy {
	case Strict:
		if n := len(points); n > 0 && points[n-1] > duration {
			return nil, &OutOfRangeError{Value: points[n-1], Duration: duration}
		}
	case Truncate:
		for len(points) > 0 && points[len(points)-1] > duration {
			points = points[:len(points)-1]
		}
	default:
		return nil, fmt.Errorf("split: unsupported policy %s", policy)
	}

	segments := make([]Segment, 0, len(points)+1)
	start := 0.0
	for _, end := range append(points, duration) {
		segments = append(segments, Segment{Start: start, End: end})
		start = end
	}
	return segments, nil
}

// Tiles reports whether segments cover [0, duration) contiguously with no
// overlap or inverted interval.
func Tiles(segments []Segment, duration float64) bool {
	if len(segments) == 0 {
		return false
	}
	cursor := 0.0
	for _, seg := range segments {
		if seg.Start != cursor || seg.End < seg.Start {
			return false
		}
		cursor = seg.End
	}
	return cursor == duration
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "s"
}
