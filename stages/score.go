package stages

import (
	"context"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/pipeline"
	"github.com/rushteam/bullpenkit/scoring"
)

// ScoreStage 对候选池做确定性打分与排序，写入前 N 名的 (候选, 得分) 配对。
// 池或对位上下文缺失属于阶段契约违规（编排错误），立即失败不恢复；
// 空排序（池空或全部被排除）不是错误，由后续阶段降级处理。
type ScoreStage struct{}

func (s *ScoreStage) Name() string        { return "stage.score" }
func (s *ScoreStage) Kind() pipeline.Kind { return pipeline.KindScore }

func (s *ScoreStage) Process(_ context.Context, state *core.State) (*core.State, error) {
	if state.Matchup == nil || state.Pool == nil {
		return nil, core.NewDomainError(core.ModulePipeline, core.ErrorCodeInvalidState,
			"score stage requires a loaded pool and a matchup context")
	}

	_, pairs := scoring.Rank(
		state.Pool,
		state.Matchup.Batter,
		state.Matchup.Leverage,
		state.Matchup.Exclude,
	)

	state.Scored = pairs
	return state, nil
}
