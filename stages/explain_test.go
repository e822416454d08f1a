package stages

import (
	"context"
	"testing"

	"github.com/rushteam/bullpenkit/core"
)

// fakeAdvisor implements advisor.Explainer for stage tests.
type fakeAdvisor struct {
	configured bool
	text       string
	ok         bool
	calls      int
}

func (f *fakeAdvisor) Configured() bool { return f.configured }

func (f *fakeAdvisor) Explain(_ context.Context, _ *core.MatchupContext, _ []core.ScoredReliever) (string, bool) {
	f.calls++
	return f.text, f.ok
}

func scoredState(t *testing.T) *core.State {
	t.Helper()
	state := core.NewState(newMatchup(t))
	state.Scored = []core.ScoredReliever{
		{Reliever: &core.Reliever{Name: "Ace Closer"}, Score: 0.86},
		{Reliever: &core.Reliever{Name: "Solid Setup"}, Score: 0.78},
	}
	return state
}

func TestExplainStage(t *testing.T) {
	adv := &fakeAdvisor{configured: true, text: "Ace Closer dominates righties and is fully rested.", ok: true}
	state := scoredState(t)

	out, err := (&ExplainStage{Advisor: adv}).Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if adv.calls != 1 {
		t.Errorf("Explain called %d times, want 1", adv.calls)
	}
	if out.Explanation != adv.text {
		t.Errorf("Explanation = %q", out.Explanation)
	}
	if len(out.Notes) != 0 {
		t.Errorf("Notes = %v, want none on success", out.Notes)
	}
}

func TestExplainStageSkips(t *testing.T) {
	tests := []struct {
		name     string
		advisor  *fakeAdvisor
		state    func(*testing.T) *core.State
		wantNote string
	}{
		{
			name:     "nil advisor",
			advisor:  nil,
			state:    scoredState,
			wantNote: "LLM explanation skipped (no API key configured).",
		},
		{
			name:     "unconfigured advisor",
			advisor:  &fakeAdvisor{configured: false},
			state:    scoredState,
			wantNote: "LLM explanation skipped (no API key configured).",
		},
		{
			name:    "empty ranking",
			advisor: &fakeAdvisor{configured: true},
			state: func(t *testing.T) *core.State {
				return core.NewState(newMatchup(t))
			},
			wantNote: "No scored relievers available for explanation.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state(t)
			stage := &ExplainStage{}
			if tt.advisor != nil {
				stage.Advisor = tt.advisor
			}
			out, err := stage.Process(context.Background(), state)
			if err != nil {
				t.Fatalf("Process() error = %v, explain must never fail", err)
			}
			if out.HasExplanation() {
				t.Errorf("Explanation = %q, want empty", out.Explanation)
			}
			if len(out.Notes) != 1 || out.Notes[0] != tt.wantNote {
				t.Errorf("Notes = %v, want [%q]", out.Notes, tt.wantNote)
			}
			if tt.advisor != nil && tt.advisor.calls != 0 {
				t.Errorf("Explain called %d times, want 0", tt.advisor.calls)
			}
		})
	}
}

func TestExplainStageAdvisorFailureLeavesExplanationEmpty(t *testing.T) {
	adv := &fakeAdvisor{configured: true, ok: false}
	state := scoredState(t)

	out, err := (&ExplainStage{Advisor: adv}).Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out.HasExplanation() {
		t.Errorf("Explanation = %q, want empty when advisor returns absent", out.Explanation)
	}
}
