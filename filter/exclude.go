package filter

import (
	"context"
	"strings"

	"github.com/rushteam/bullpenkit/core"
)

// ExcludeFilter 按姓名剔除候选，匹配大小写不敏感并去除首尾空格。
// 名单来自对位上下文的 Exclude 字段加上此处的固定名单。
type ExcludeFilter struct {
	// Names 是固定排除名单（与请求级 Exclude 合并生效）
	Names []string
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	_ context.Context,
	matchup *core.MatchupContext,
	r *core.Reliever,
) (bool, error) {
	if r == nil {
		return true, nil
	}
	name := strings.ToLower(strings.TrimSpace(r.Name))
	for _, n := range f.Names {
		if name == strings.ToLower(strings.TrimSpace(n)) {
			return true, nil
		}
	}
	if matchup != nil && matchup.Excluded(r.Name) {
		return true, nil
	}
	return false, nil
}
