package stages

import (
	"context"
	"testing"

	"github.com/rushteam/bullpenkit/core"
)

func TestCritique(t *testing.T) {
	tests := []struct {
		name        string
		topName     string
		explanation string
		want        string
	}{
		{"no explanation", "Ace Closer", "", NoteNoExplanation},
		{"exact reference", "Ace Closer", "Ace Closer owns righties tonight.", NoteExplanationReferencesTop},
		{"case insensitive reference", "Ace Closer", "Go with ACE CLOSER here.", NoteExplanationReferencesTop},
		{"name omitted", "Ace Closer", "The top arm has the best platoon split.", NoteExplanationOmitsTop},
		{"partial different name", "Ace Closer", "Ace Reliever is the call.", NoteExplanationOmitsTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Critique(tt.topName, tt.explanation); got != tt.want {
				t.Errorf("Critique() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCritiqueStage(t *testing.T) {
	state := scoredState(t)
	state.Explanation = "Ace Closer gets the nod on rest and splits."

	out, err := (&CritiqueStage{}).Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Notes) != 1 || out.Notes[0] != NoteExplanationReferencesTop {
		t.Errorf("Notes = %v", out.Notes)
	}
}

func TestCritiqueStageNothingScored(t *testing.T) {
	state := core.NewState(newMatchup(t))

	out, err := (&CritiqueStage{}).Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Notes) != 1 || out.Notes[0] != NoteNothingToCritique {
		t.Errorf("Notes = %v", out.Notes)
	}
}

func TestCritiqueStageNoExplanation(t *testing.T) {
	state := scoredState(t)

	out, err := (&CritiqueStage{}).Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Notes) != 1 || out.Notes[0] != NoteNoExplanation {
		t.Errorf("Notes = %v", out.Notes)
	}
}
