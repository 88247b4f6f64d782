package segment_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cutter/internal/segment"
)

func TestSplitWithoutCutsReturnsWholeDuration(t *testing.T) {
	for _, duration := range []float64{0, 0.5, 10, 3600.25} {
		for _, policy := range []segment.Policy{segment.Strict, segment.Truncate} {
			got, err := segment.Split(duration, nil, policy)
			if err != nil {
				t.Fatalf("Split(%v, nil, %s) returned error: %v", duration, policy, err)
			}
			want := []segment.Segment{{Start: 0, End: duration}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Split(%v, nil, %s) mismatch (-want +got):\n%s", duration, policy, diff)
			}
		}
	}
}

func TestSplitScenarios(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		cuts     []float64
		policy   segment.Policy
		want     []segment.Segment
	}{
		{
			name:     "two cuts inside duration",
			duration: 10,
			cuts:     []float64{4, 7},
			policy:   segment.Truncate,
			want:     []segment.Segment{{0, 4}, {4, 7}, {7, 10}},
		},
		{
			name:     "truncate drops single overflowing cut",
			duration: 10,
			cuts:     []float64{12},
			policy:   segment.Truncate,
			want:     []segment.Segment{{0, 10}},
		},
		{
			name:     "truncate drops every overflowing cut",
			duration: 10,
			cuts:     []float64{15, 3, 11},
			policy:   segment.Truncate,
			want:     []segment.Segment{{0, 3}, {3, 10}},
		},
		{
			name:     "cut at duration is in range",
			duration: 10,
			cuts:     []float64{5, 10},
			policy:   segment.Strict,
			want:     []segment.Segment{{0, 5}, {5, 10}, {10, 10}},
		},
		{
			name:     "duplicates produce empty segment",
			duration: 8,
			cuts:     []float64{2, 2},
			policy:   segment.Strict,
			want:     []segment.Segment{{0, 2}, {2, 2}, {2, 8}},
		},
		{
			name:     "cut at zero",
			duration: 8,
			cuts:     []float64{0},
			policy:   segment.Truncate,
			want:     []segment.Segment{{0, 0}, {0, 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := segment.Split(tt.duration, tt.cuts, tt.policy)
			if err != nil {
				t.Fatalf("Split returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("segments mismatch (-want +got):\n%s", diff)
			}
			if !segment.Tiles(got, tt.duration) {
				t.Fatalf("segments %v do not tile [0, %v)", got, tt.duration)
			}
		})
	}
}

func TestSplitTilingLaw(t *testing.T) {
	duration := 60.0
	cuts := []float64{1.5, 12, 12.25, 30, 59.999}
	got, err := segment.Split(duration, cuts, segment.Strict)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(got) != len(cuts)+1 {
		t.Fatalf("expected %d segments, got %d", len(cuts)+1, len(got))
	}
	bounds := append([]float64{0}, cuts...)
	bounds = append(bounds, duration)
	for i, seg := range got {
		if seg.Start != bounds[i] || seg.End != bounds[i+1] {
			t.Fatalf("segment %d = %v, want [%v, %v)", i, seg, bounds[i], bounds[i+1])
		}
	}
	total := 0.0
	for _, seg := range got {
		total += seg.Duration()
	}
	if math.Abs(total-duration) > 1e-9 {
		t.Fatalf("segment durations sum to %v, want %v", total, duration)
	}
}

func TestSplitIsOrderIndependent(t *testing.T) {
	sorted := []float64{2, 4, 6, 8}
	unsorted := []float64{6, 2, 8, 4}
	original := append([]float64(nil), unsorted...)

	want, err := segment.Split(10, sorted, segment.Truncate)
	if err != nil {
		t.Fatalf("Split sorted: %v", err)
	}
	got, err := segment.Split(10, unsorted, segment.Truncate)
	if err != nil {
		t.Fatalf("Split unsorted: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unsorted input changed result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original, unsorted); diff != "" {
		t.Fatalf("caller slice was mutated (-want +got):\n%s", diff)
	}
}

func TestSplitStrictRejectsOverflow(t *testing.T) {
	got, err := segment.Split(10, []float64{3, 14, 12}, segment.Strict)
	if err == nil {
		t.Fatalf("expected error, got segments %v", got)
	}
	if got != nil {
		t.Fatalf("expected no segments on failure, got %v", got)
	}
	var rangeErr *segment.OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected OutOfRangeError, got %T: %v", err, err)
	}
	if rangeErr.Value != 14 || rangeErr.Duration != 10 {
		t.Fatalf("unexpected error fields: value=%v duration=%v", rangeErr.Value, rangeErr.Duration)
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	if _, err := segment.Split(-1, nil, segment.Truncate); !errors.Is(err, segment.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := segment.Split(math.NaN(), nil, segment.Truncate); !errors.Is(err, segment.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for NaN, got %v", err)
	}
	if _, err := segment.Split(10, []float64{1, -2}, segment.Truncate); !errors.Is(err, segment.ErrInvalidCutPoint) {
		t.Fatalf("expected ErrInvalidCutPoint, got %v", err)
	}
	if _, err := segment.Split(10, []float64{math.Inf(1)}, segment.Truncate); !errors.Is(err, segment.ErrInvalidCutPoint) {
		t.Fatalf("expected ErrInvalidCutPoint for +Inf, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]segment.Policy{
		"":         segment.Truncate,
		"truncate": segment.Truncate,
		" STRICT ": segment.Strict,
		"Truncate": segment.Truncate,
	}
	for input, want := range cases {
		got, err := segment.ParsePolicy(input)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePolicy(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := segment.ParsePolicy("lenient"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestTilesDetectsGaps(t *testing.T) {
	if segment.Tiles(nil, 0) {
		t.Fatal("expected empty segment list not to tile")
	}
	if segment.Tiles([]segment.Segment{{0, 4}, {5, 10}}, 10) {
		t.Fatal("expected gap to be detected")
	}
	if segment.Tiles([]segment.Segment{{0, 4}, {4, 9}}, 10) {
		t.Fatal("expected short coverage to be detected")
	}
	if !segment.Tiles([]segment.Segment{{0, 4}, {4, 10}}, 10) {
		t.Fatal("expected contiguous segments to tile")
	}
}
