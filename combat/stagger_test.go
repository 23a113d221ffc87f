package combat

import "testing"

func TestStaggerMeter(t *testing.T) {
	cases := []struct {
		name     string
		run      func(s *StaggerMeter)
		want     float64
		wantFull bool
	}{
		{
			name: "add_accumulates",
			run:  func(s *StaggerMeter) { s.Add(20); s.Add(20) },
			want: 40,
		},
		{
			name:     "add_clamps_to_max",
			run:      func(s *StaggerMeter) { s.Add(60); s.Add(60) },
			want:     100,
			wantFull: true,
		},
		{
			name: "negative_add_ignored",
			run:  func(s *StaggerMeter) { s.Add(30); s.Add(-10) },
			want: 30,
		},
		{
			name: "decay_per_second",
			run:  func(s *StaggerMeter) { s.Add(30); s.Decay(1) },
			want: 20,
		},
		{
			name: "decay_floors_at_zero",
			run:  func(s *StaggerMeter) { s.Add(5); s.Decay(2) },
			want: 0,
		},
		{
			name: "reset",
			run:  func(s *StaggerMeter) { s.Add(100); s.Reset() },
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStaggerMeter(100, 10)
			tc.run(s)
			if s.Current != tc.want {
				t.Fatalf("Current = %v, want %v", s.Current, tc.want)
			}
			if s.Full() != tc.wantFull {
				t.Fatalf("Full() = %v, want %v", s.Full(), tc.wantFull)
			}
		})
	}
}

func TestStaggerMeterNil(t *testing.T) {
	var s *StaggerMeter
	s.Add(10)
	s.Decay(1)
	s.Reset()
	if s.Full() || s.Percent() != 0 {
		t.Fatalf("nil meter should be empty")
	}
	if m := NewStaggerMeter(0, 1); m.Max != 1 {
		t.Fatalf("Max = %v, want fallback 1", m.Max)
	}
}
