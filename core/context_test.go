package core

import "testing"

func TestParseLeverage(t *testing.T) {
	tests := []struct {
		in      string
		want    Leverage
		wantErr bool
	}{
		{"low", LeverageLow, false},
		{"Medium", LeverageMedium, false},
		{" HIGH ", LeverageHigh, false},
		{"", LeverageMedium, false},
		{"clutch", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLeverage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLeverage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLeverage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewMatchupContext(t *testing.T) {
	m, err := NewMatchupContext("l", "", []string{"Ace Closer", "  ", ""})
	if err != nil {
		t.Fatalf("NewMatchupContext() error = %v", err)
	}
	if m.Batter != SideLeft {
		t.Errorf("Batter = %q, want L", m.Batter)
	}
	if m.Leverage != LeverageMedium {
		t.Errorf("Leverage = %q, want medium (default)", m.Leverage)
	}
	if len(m.Exclude) != 1 {
		t.Errorf("Exclude = %v, want blank entries dropped", m.Exclude)
	}

	if _, err := NewMatchupContext("X", "high", nil); err == nil {
		t.Error("NewMatchupContext(bad side) error = nil, want INVALID_INPUT")
	}
	if _, err := NewMatchupContext("R", "clutch", nil); err == nil {
		t.Error("NewMatchupContext(bad leverage) error = nil, want INVALID_INPUT")
	}
}

func TestMatchupContextExcluded(t *testing.T) {
	m := &MatchupContext{Exclude: []string{"Ace Closer", "  Solid Setup "}}

	tests := []struct {
		name string
		want bool
	}{
		{"Ace Closer", true},
		{"ace closer", true},
		{"  ACE CLOSER  ", true},
		{"Solid Setup", true},
		{"Mop Up", false},
	}
	for _, tt := range tests {
		if got := m.Excluded(tt.name); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStateTopAndNotes(t *testing.T) {
	s := NewState(&MatchupContext{Batter: SideRight, Leverage: LeverageMedium})

	if _, ok := s.Top(); ok {
		t.Error("Top() on empty scored list should report ok=false")
	}
	if s.HasExplanation() {
		t.Error("HasExplanation() = true before explain stage")
	}

	s.Scored = []ScoredReliever{
		{Reliever: &Reliever{Name: "Ace Closer"}, Score: 0.9},
		{Reliever: &Reliever{Name: "Solid Setup"}, Score: 0.7},
	}
	top, ok := s.Top()
	if !ok || top.Reliever.Name != "Ace Closer" {
		t.Errorf("Top() = %+v, %v, want Ace Closer", top, ok)
	}

	s.AppendNote("removed %d candidate(s)", 2)
	if len(s.Notes) != 1 || s.Notes[0] != "removed 2 candidate(s)" {
		t.Errorf("Notes = %v", s.Notes)
	}
}
