package core

import (
	"fmt"
	"strings"
)

// Leverage 表示比赛时刻的局势重要性分层，会影响打分权重。
type Leverage string

const (
	LeverageLow    Leverage = "low"
	LeverageMedium Leverage = "medium"
	LeverageHigh   Leverage = "high"
)

// ParseLeverage 规范化局势分层；空值默认 medium。
func ParseLeverage(s string) (Leverage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return LeverageMedium, nil
	case "low":
		return LeverageLow, nil
	case "medium":
		return LeverageMedium, nil
	case "high":
		return LeverageHigh, nil
	}
	return "", NewDomainError(ModulePipeline, ErrorCodeInvalidInput,
		fmt.Sprintf("invalid leverage %q (want low/medium/high)", s))
}

// MatchupContext 承载一次推荐请求的对位信息，贯穿整个 Pipeline 透传。
// 每次请求构造一次，流水线执行期间只读。
type MatchupContext struct {
	// Batter 击球员站位（L/R）
	Batter Side
	// Leverage 局势分层（low/medium/high）
	Leverage Leverage
	// Exclude 要跳过的投手名单（原始值，匹配时大小写不敏感并去空格）
	Exclude []string

	// Params 请求级上下文参数（比分、出局数、跑垒员等），
	// 供规则 DSL 与文本顾问使用，打分器不读取。
	Params map[string]any
}

// NewMatchupContext 构造并规范化对位上下文。
func NewMatchupContext(batter, leverage string, exclude []string) (*MatchupContext, error) {
	side, err := ParseSide(batter)
	if err != nil {
		return nil, err
	}
	lev, err := ParseLeverage(leverage)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(exclude))
	for _, n := range exclude {
		if strings.TrimSpace(n) != "" {
			names = append(names, n)
		}
	}
	return &MatchupContext{Batter: side, Leverage: lev, Exclude: names}, nil
}

// ExcludedSet 返回规范化后的排除名单集合（小写 + 去空格）。
func (m *MatchupContext) ExcludedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.Exclude))
	for _, n := range m.Exclude {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return set
}

// Excluded 判断给定姓名是否在排除名单中。
func (m *MatchupContext) Excluded(name string) bool {
	_, ok := m.ExcludedSet()[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
