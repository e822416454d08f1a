package stages

import (
	"context"
	"strings"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/pipeline"
)

// Critic 备注文案。选择逻辑见 Critique。
const (
	NoteExplanationReferencesTop = "Critic: explanation references the top candidate by name."
	NoteExplanationOmitsTop      = "Critic: explanation omitted the top candidate's name; consider regenerating."
	NoteNoExplanation            = "Critic: no explanation generated; deterministic ranking only."
	NoteNothingToCritique        = "No relievers scored; nothing to critique."
)

// Critique 是确定性的文本启发式校验（无学习）：
//   - 无解释时，给出"仅确定性排序"备注
//   - 有解释时，大小写不敏感地检查是否包含榜首候选姓名，
//     分别给出"已引用"或"遗漏，建议重新生成"备注
//
// 从不报错，只产出观测备注。
func Critique(topName, explanation string) string {
	if explanation == "" {
		return NoteNoExplanation
	}
	if strings.Contains(strings.ToLower(explanation), strings.ToLower(topName)) {
		return NoteExplanationReferencesTop
	}
	return NoteExplanationOmitsTop
}

// CritiqueStage 对解释做事后校验并追加 Critic 备注，是流水线的终态阶段。
type CritiqueStage struct{}

func (s *CritiqueStage) Name() string        { return "stage.critique" }
func (s *CritiqueStage) Kind() pipeline.Kind { return pipeline.KindCritique }

func (s *CritiqueStage) Process(_ context.Context, state *core.State) (*core.State, error) {
	top, ok := state.Top()
	if !ok {
		state.AppendNote(NoteNothingToCritique)
		return state, nil
	}

	state.AppendNote("%s", Critique(top.Reliever.Name, state.Explanation))
	return state, nil
}
