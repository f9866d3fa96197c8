package game

import (
	"testing"
	"time"
)

func TestEffectiveRenovationCost(t *testing.T) {
	tests := []struct {
		base       int64
		cheapLabor bool
		want       int64
	}{
		{base: 2000, cheapLabor: false, want: 2000},
		{base: 2000, cheapLabor: true, want: 1600},
		{base: 5000, cheapLabor: true, want: 4000},
		{base: 0, cheapLabor: true, want: 0},
	}
	for _, tc := range tests {
		got := EffectiveRenovationCost(tc.base, tc.cheapLabor, 20)
		if got != tc.want {
			t.Fatalf("base=%d cheap=%v got=%d want=%d", tc.base, tc.cheapLabor, got, tc.want)
		}
	}
}

func TestEffectiveRent(t *testing.T) {
	p := Property{PotentialRent: 1000}
	if got := EffectiveRent(p, false, 10); got != 0 {
		t.Fatalf("expected 0 rent without tenant, got %d", got)
	}

	p.Tenant = &Tenant{RentOfferPct: 100}
	if got := EffectiveRent(p, false, 10); got != 1000 {
		t.Fatalf("full offer: got %d want 1000", got)
	}

	p.Tenant.RentOfferPct = 85
	if got := EffectiveRent(p, false, 10); got != 850 {
		t.Fatalf("85%% offer: got %d want 850", got)
	}
	if got := EffectiveRent(p, true, 10); got != 935 {
		t.Fatalf("85%% offer with marketing: got %d want 935", got)
	}
}

func TestClampCondition(t *testing.T) {
	tests := []struct{ in, want int }{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 55, want: 55},
		{in: 100, want: 100},
		{in: 130, want: 100},
	}
	for _, tc := range tests {
		if got := clampCondition(tc.in); got != tc.want {
			t.Fatalf("clamp(%d)=%d want %d", tc.in, got, tc.want)
		}
	}
}

func TestAppendEventCapsLog(t *testing.T) {
	st := State{EventCounter: 1}
	now := time.Now()
	for i := 0; i < 8; i++ {
		st.appendEvent("entry", EventNeutral, now)
	}

	if len(st.EventLog) != EventLogCap {
		t.Fatalf("log length %d, want %d", len(st.EventLog), EventLogCap)
	}
	// Newest first, ids monotonic, never reused.
	for i, ev := range st.EventLog {
		want := 8 - i
		if ev.ID != want {
			t.Fatalf("log[%d].ID=%d want %d", i, ev.ID, want)
		}
	}
	if st.EventCounter != 9 {
		t.Fatalf("counter %d, want 9", st.EventCounter)
	}
}

func TestAllocatePropertyIDSkipsUsed(t *testing.T) {
	st := State{
		Market:         []Property{{ID: 5}},
		Portfolio:      []Property{{ID: 6}},
		NextPropertyID: 5,
	}
	if got := st.allocatePropertyID(); got != 7 {
		t.Fatalf("allocated %d, want 7", got)
	}
	if st.NextPropertyID != 8 {
		t.Fatalf("next id %d, want 8", st.NextPropertyID)
	}
}
