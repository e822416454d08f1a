package filter

import (
	"context"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/pkg/dsl"
)

// RuleFilter 用 CEL 表达式描述候选资格，表达式对候选成立时保留。
// 例如 `reliever.days_rest >= 1 && reliever.era < 6.0`。
// 空表达式不设限制。
type RuleFilter struct {
	// Expr 是资格表达式（CEL 语法，变量为 reliever / matchup）
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	matchup *core.MatchupContext,
	r *core.Reliever,
) (bool, error) {
	if r == nil {
		return true, nil
	}
	eligible, err := dsl.NewEval(r, matchup).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !eligible, nil
}
