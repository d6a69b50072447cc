package domain

import (
	"math"
	"testing"
	"time"
)

func TestDefaultWheelSegmentsProbabilitiesSumToOne(t *testing.T) {
	sum := 0.0
	for _, seg := range DefaultWheelSegments() {
		if seg.Probability <= 0 {
			t.Errorf("segment %d has probability %f", seg.ID, seg.Probability)
		}
		if seg.Amount <= 0 {
			t.Errorf("segment %d has amount %d", seg.ID, seg.Amount)
		}
		sum += seg.Probability
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1.0", sum)
	}
}

func TestSpinWheelAlwaysPicksASegment(t *testing.T) {
	segments := DefaultWheelSegments()
	valid := make(map[int]bool, len(segments))
	for _, seg := range segments {
		valid[seg.ID] = true
	}

	for i := 0; i < 1000; i++ {
		seg := SpinWheel(segments)
		if !valid[seg.ID] {
			t.Fatalf("picked unknown segment %d", seg.ID)
		}
	}
}

func TestSpinWheelRespectsWeights(t *testing.T) {
	// a rough check: the 30% segment should land far more often than the 7%
	// one over many spins
	segments := DefaultWheelSegments()
	counts := make(map[int]int)
	const spins = 20000
	for i := 0; i < spins; i++ {
		counts[SpinWheel(segments).ID]++
	}

	if counts[1] <= counts[5] {
		t.Errorf("weight 0.30 segment hit %d times, weight 0.07 hit %d", counts[1], counts[5])
	}
}

func TestSpinDayUTC(t *testing.T) {
	ist := time.FixedZone("IST", 3*3600)
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midday utc",
			time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC),
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"local evening crosses into next utc day",
			time.Date(2025, 6, 15, 1, 30, 0, 0, ist), // 22:30 June 14 UTC
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SpinDayUTC(tc.in); !got.Equal(tc.want) {
				t.Errorf("SpinDayUTC(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
