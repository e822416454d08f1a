package core

import "fmt"

// ScoredReliever 是候选投手与其确定性得分的配对，作为排序键。
// Score 已四舍五入到 4 位小数。
type ScoredReliever struct {
	Reliever *Reliever
	Score    float64
}

// State 是贯穿四个阶段（Load → Score → Explain → Critique）的累积状态：
// 每个阶段接收当前状态并返回更新后的状态，先行阶段写入的字段不会被后续阶段清空。
//
// Notes 是各阶段追加的人类可读备注（观测用，Critic 也写入这里）。
type State struct {
	Matchup *MatchupContext

	// Pool 在 Load 阶段之后可用
	Pool []*Reliever

	// Scored 在 Score 阶段之后可用，按得分降序
	Scored []ScoredReliever

	// Explanation 在 Explain 阶段之后可用；空串表示未生成
	Explanation string

	Notes []string
}

// NewState 以对位上下文创建初始状态（流水线的入口状态）。
func NewState(matchup *MatchupContext) *State {
	return &State{Matchup: matchup}
}

// AppendNote 追加一条备注。
func (s *State) AppendNote(format string, args ...any) {
	s.Notes = append(s.Notes, fmt.Sprintf(format, args...))
}

// Top 返回排名第一的候选，排序为空时 ok 为 false。
func (s *State) Top() (ScoredReliever, bool) {
	if len(s.Scored) == 0 {
		return ScoredReliever{}, false
	}
	return s.Scored[0], true
}

// HasExplanation 判断是否已生成解释文本。
func (s *State) HasExplanation() bool {
	return s.Explanation != ""
}
