package filter

import (
	"context"

	"github.com/rushteam/bullpenkit/core"
)

// Filter 是候选过滤器的抽象接口，用于判断一个候选是否应该被剔除。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, matchup *core.MatchupContext, r *core.Reliever) (bool, error)
}

// Apply 依次套用多个过滤器：任一过滤器命中即剔除该候选；
// 过滤器自身出错时跳过该过滤器不中断流程。返回保留的候选与剔除数量。
func Apply(
	ctx context.Context,
	filters []Filter,
	matchup *core.MatchupContext,
	pool []*core.Reliever,
) ([]*core.Reliever, int) {
	if len(filters) == 0 || len(pool) == 0 {
		return pool, 0
	}

	out := make([]*core.Reliever, 0, len(pool))
	removed := 0
	for _, r := range pool {
		if r == nil {
			continue
		}
		keep := true
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, matchup, r)
			if err != nil {
				continue
			}
			if ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		} else {
			removed++
		}
	}
	return out, removed
}
