package filter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rushteam/bullpenkit/core"
)

// UnavailableFilter 从 Store 读取不可用名单（伤病名单、已登板名单等）
// 并剔除在列的候选。名单是 JSON 字符串数组，由外部任务维护。
// Store 不可达或 key 缺失时不剔除任何人（名单是收紧条件，缺失时放行）。
type UnavailableFilter struct {
	Store core.Store
	// Key 例如 "bullpen:unavailable"
	Key string
}

func (f *UnavailableFilter) Name() string {
	return "filter.unavailable"
}

func (f *UnavailableFilter) ShouldFilter(
	ctx context.Context,
	_ *core.MatchupContext,
	r *core.Reliever,
) (bool, error) {
	if r == nil {
		return true, nil
	}
	if f.Store == nil || f.Key == "" {
		return false, nil
	}

	data, err := f.Store.Get(ctx, f.Key)
	if err != nil {
		return false, nil
	}
	var names []string
	if json.Unmarshal(data, &names) != nil {
		return false, nil
	}

	name := strings.ToLower(strings.TrimSpace(r.Name))
	for _, n := range names {
		if name == strings.ToLower(strings.TrimSpace(n)) {
			return true, nil
		}
	}
	return false, nil
}
