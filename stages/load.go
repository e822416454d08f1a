// Package stages 实现推荐流水线的四个阶段：Load → Score → Explain → Critique。
// 恢复逻辑全部集中在 Load；Score 之后的阶段要么成功、要么只追加备注，
// 唯一例外是 Score 的阶段契约违规（编程错误，直接失败）。
package stages

import (
	"context"
	"time"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/data"
	"github.com/rushteam/bullpenkit/filter"
	"github.com/rushteam/bullpenkit/pipeline"
)

// Refresher 是 Load 阶段的恢复协作方：重建主数据源并返回写出的行数。
// statcast.Refresher 实现此接口。
type Refresher interface {
	Refresh(ctx context.Context, outputPath string, start, end time.Time, minInnings float64) (int, error)
}

// LoadStage 填充候选池，带一次性 refresh-and-retry 恢复：
//   - 主数据缺失/为空（DATA_UNAVAILABLE）时调用 Refresher 重建主数据，
//     使缓存失效后重试加载恰好一次
//   - Refresher 自身失败（UPSTREAM_FETCH_FAILED）时记录备注并传播错误，
//     不做第二次重试
//   - Refresher 未配置时 DATA_UNAVAILABLE 直接传播
//
// 加载成功后套用可选的资格过滤器（排除名单之外的收紧条件）。
type LoadStage struct {
	Loader *data.PoolLoader
	Path   string

	// Refresher 为 nil 时无恢复路径
	Refresher  Refresher
	MinInnings float64

	// Filters 是加载后套用的资格过滤器（可选）
	Filters []filter.Filter
}

func (s *LoadStage) Name() string        { return "stage.load" }
func (s *LoadStage) Kind() pipeline.Kind { return pipeline.KindLoad }

func (s *LoadStage) Process(ctx context.Context, state *core.State) (*core.State, error) {
	pool, err := s.Loader.Load(ctx, s.Path)
	if err != nil {
		if !core.IsDataUnavailable(err) || s.Refresher == nil {
			return nil, err
		}

		rows, rerr := s.Refresher.Refresh(ctx, s.Path, time.Time{}, time.Time{}, s.MinInnings)
		if rerr != nil {
			state.AppendNote("Statcast refresh failed: %v", rerr)
			return nil, rerr
		}
		state.AppendNote("Auto-refreshed reliever CSV with %d Statcast rows.", rows)

		s.Loader.Invalidate(s.Path)
		pool, err = s.Loader.Load(ctx, s.Path)
		if err != nil {
			return nil, err
		}
	}

	if len(s.Filters) > 0 {
		kept, removed := filter.Apply(ctx, s.Filters, state.Matchup, pool)
		if removed > 0 {
			state.AppendNote("Eligibility filters removed %d candidate(s).", removed)
		}
		pool = kept
	}

	state.Pool = pool
	return state, nil
}
