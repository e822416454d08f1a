package dsl

import (
	"testing"

	"github.com/rushteam/bullpenkit/core"
)

func testReliever() *core.Reliever {
	return &core.Reliever{
		Name:     "Ace Closer",
		Team:     "PIT",
		Throws:   core.SideRight,
		ERA:      2.0,
		WHIP:     0.9,
		KPer9:    12.0,
		BBPer9:   2.0,
		VsLeft:   0.250,
		VsRight:  0.260,
		DaysRest: 2,
	}
}

func TestEvaluate(t *testing.T) {
	matchup := &core.MatchupContext{
		Batter:   core.SideLeft,
		Leverage: core.LeverageHigh,
		Params:   map[string]any{"inning": int64(8)},
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expression is true", "", true, false},
		{"numeric comparison", `reliever.era < 3.0`, true, false},
		{"integer field", `reliever.days_rest >= 1`, true, false},
		{"string field", `reliever.throws == "R"`, true, false},
		{"logical and", `reliever.whip < 1.0 && reliever.k9 > 10.0`, true, false},
		{"matchup batter", `matchup.batter == "L"`, true, false},
		{"leverage conditional", `matchup.leverage == "high" ? reliever.era < 4.0 : true`, true, false},
		{"params access", `matchup.params.inning >= 7`, true, false},
		{"false result", `reliever.era > 5.0`, false, false},
		{"syntax error", `reliever.era <<< 1`, false, true},
		{"unknown field", `reliever.spin_rate > 2000.0`, false, true},
		{"non-boolean result", `reliever.era + 1.0`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(testReliever(), matchup).Evaluate(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateNilInputs(t *testing.T) {
	// nil reliever/matchup become empty maps: field access errors, empty expr fine
	eval := NewEval(nil, nil)

	if got, err := eval.Evaluate(""); err != nil || !got {
		t.Errorf("Evaluate(empty) = %v, %v", got, err)
	}
	if _, err := eval.Evaluate(`reliever.era < 3.0`); err == nil {
		t.Error("Evaluate on nil reliever error = nil, want eval error")
	}
}
