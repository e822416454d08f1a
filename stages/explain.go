package stages

import (
	"context"

	"github.com/rushteam/bullpenkit/advisor"
	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/pipeline"
)

// ExplainStage 请求外部文本顾问为榜首候选生成解释。
// 排序为空或顾问未配置时跳过并追加备注；顾问返回缺席时解释保持为空
// （由 Critique 阶段给出相应备注），本阶段从不失败。
type ExplainStage struct {
	Advisor advisor.Explainer
}

func (s *ExplainStage) Name() string        { return "stage.explain" }
func (s *ExplainStage) Kind() pipeline.Kind { return pipeline.KindExplain }

func (s *ExplainStage) Process(ctx context.Context, state *core.State) (*core.State, error) {
	if len(state.Scored) == 0 {
		state.AppendNote("No scored relievers available for explanation.")
		return state, nil
	}

	if s.Advisor == nil || !s.Advisor.Configured() {
		state.AppendNote("LLM explanation skipped (no API key configured).")
		return state, nil
	}

	if text, ok := s.Advisor.Explain(ctx, state.Matchup, state.Scored); ok {
		state.Explanation = text
	}
	return state, nil
}
