package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/bullpenkit/core"
)

// 解释文本的默认字数范围。
const (
	DefaultExplainMinWords = 80
	DefaultExplainMaxWords = 120
)

// Explainer 是 Explain 阶段依赖的最小接口（由 Client 实现）。
type Explainer interface {
	Configured() bool
	Explain(ctx context.Context, matchup *core.MatchupContext, top []core.ScoredReliever) (string, bool)
}

var _ Explainer = (*Client)(nil)

// candidatePayload 是传给文本服务的候选形状：速率统计加得分。
type candidatePayload struct {
	Name     string  `json:"name"`
	Throws   string  `json:"throws"`
	ERA      float64 `json:"era"`
	WHIP     float64 `json:"whip"`
	K9       float64 `json:"k9"`
	BB9      float64 `json:"bb9"`
	VsLWOBA  float64 `json:"vsL_woba"`
	VsRWOBA  float64 `json:"vsR_woba"`
	DaysRest int     `json:"days_rest"`
	Score    float64 `json:"score"`
}

func candidatePayloads(top []core.ScoredReliever) []candidatePayload {
	out := make([]candidatePayload, 0, len(top))
	for _, pair := range top {
		r := pair.Reliever
		out = append(out, candidatePayload{
			Name:     r.Name,
			Throws:   string(r.Throws),
			ERA:      r.ERA,
			WHIP:     r.WHIP,
			K9:       r.KPer9,
			BB9:      r.BBPer9,
			VsLWOBA:  r.VsLeft,
			VsRWOBA:  r.VsRight,
			DaysRest: r.DaysRest,
			Score:    pair.Score,
		})
	}
	return out
}

func matchupPayload(m *core.MatchupContext) map[string]any {
	return map[string]any{
		"batter":   string(m.Batter),
		"leverage": string(m.Leverage),
		"exclude":  m.Exclude,
		"params":   m.Params,
	}
}

// Explain 为榜首候选生成推荐解释。
func (c *Client) Explain(
	ctx context.Context,
	matchup *core.MatchupContext,
	top []core.ScoredReliever,
) (string, bool) {
	prompt := fmt.Sprintf(
		"You are Bullpen, an MLB bullpen coach assistant. "+
			"Write a concise explanation for the top reliever using only the provided context and stats. "+
			"Stay between %d-%d words. "+
			"Highlight platoon fit, recent form, and rest considerations. "+
			"Do not invent data beyond what is provided.",
		DefaultExplainMinWords, DefaultExplainMaxWords,
	)
	return c.Generate(ctx, prompt, map[string]any{
		"game_context": matchupPayload(matchup),
		"candidates":   candidatePayloads(top),
	})
}

// Commentary 为一次模拟比赛场面生成解说（广播员口吻）。
func (c *Client) Commentary(
	ctx context.Context,
	playDescription string,
	gameState map[string]any,
	reliever *core.Reliever,
) (string, bool) {
	prompt := "You are a baseball broadcaster providing color commentary. " +
		"React to the play described using only the provided game state and reliever stats. " +
		"Two or three sentences, vivid but factual."
	return c.Generate(ctx, prompt, map[string]any{
		"play_description": playDescription,
		"game_state":       gameState,
		"reliever":         reliever,
	})
}

// StrategicAdvice 生成牛棚管理建议（是否换投、热身谁）。
func (c *Client) StrategicAdvice(
	ctx context.Context,
	gameState map[string]any,
	currentPitcher map[string]any,
	available []*core.Reliever,
	recentPerformance map[string]any,
) (string, bool) {
	prompt := "You are a veteran MLB bullpen coach making an in-game decision. " +
		"Given the game state, the current pitcher's fatigue indicators, and the available relievers, " +
		"give one actionable recommendation: keep the current pitcher, start warming someone up (name them), " +
		"or pull the pitcher now. Justify briefly from the provided numbers only."
	return c.Generate(ctx, prompt, map[string]any{
		"game_state":          gameState,
		"current_pitcher":     currentPitcher,
		"available_relievers": available,
		"recent_performance":  recentPerformance,
	})
}

// MatchupAnalysis 生成对位分析（左右打拆分与换投收益）。
func (c *Client) MatchupAnalysis(
	ctx context.Context,
	batter core.Side,
	currentPitcher map[string]any,
	available []*core.Reliever,
	gameState map[string]any,
) (string, bool) {
	prompt := "You are a matchup analyst. Compare the current pitcher and available relievers " +
		"against the batter's handedness using the wOBA platoon splits provided. " +
		"Recommend the best matchup and say why."
	return c.Generate(ctx, prompt, map[string]any{
		"batter_handedness":   string(batter),
		"current_pitcher":     currentPitcher,
		"available_relievers": available,
		"game_state":          gameState,
	})
}

// SituationalStrategy 生成局面策略（救援/保级/高压时刻等场景化建议）。
func (c *Client) SituationalStrategy(
	ctx context.Context,
	gameState map[string]any,
	available []*core.Reliever,
) (string, bool) {
	prompt := "You are a bullpen strategist. Identify the situation type " +
		"(save, hold, high leverage, mop-up) from the game state and recommend " +
		"how to deploy the available relievers for this and the following innings."
	return c.Generate(ctx, prompt, map[string]any{
		"game_state":          gameState,
		"available_relievers": available,
	})
}

// InjuryRisk 生成负荷/伤病风险评估。
func (c *Client) InjuryRisk(
	ctx context.Context,
	currentPitcher map[string]any,
	recentPerformance map[string]any,
	usageHistory map[string]any,
) (string, bool) {
	prompt := "You are a sports medicine specialist assessing pitcher workload. " +
		"From the usage history and recent performance provided, assess injury risk " +
		"and give a short recommendation. Do not speculate beyond the data."
	return c.Generate(ctx, prompt, map[string]any{
		"current_pitcher":    currentPitcher,
		"recent_performance": recentPerformance,
		"usage_history":      usageHistory,
	})
}

// RecommendationFrom 从战术建议文本中提取结构化动作：
// "warm_up_<姓名下划线>"、"consider_pulling_pitcher"、"keep_current_pitcher"，
// 无法识别时返回空串。纯关键词启发式，与 Critic 一样不依赖再次生成。
func RecommendationFrom(advice string, available []*core.Reliever) string {
	if advice == "" {
		return ""
	}
	lower := strings.ToLower(advice)

	if strings.Contains(lower, "warm up") || strings.Contains(lower, "warm-up") || strings.Contains(lower, "warming") {
		for _, r := range available {
			if r == nil || r.Name == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(r.Name)) {
				return "warm_up_" + strings.ReplaceAll(r.Name, " ", "_")
			}
		}
	}
	switch {
	case strings.Contains(lower, "pull") || strings.Contains(lower, "remove") || strings.Contains(lower, "replace"):
		return "consider_pulling_pitcher"
	case strings.Contains(lower, "stick") || strings.Contains(lower, "keep") || strings.Contains(lower, "continue"):
		return "keep_current_pitcher"
	}
	return ""
}
