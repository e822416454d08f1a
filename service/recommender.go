// Package service 组装推荐流水线并提供对外门面。
// 网络层（路由、请求校验、CORS）不在此模块内，调用方消费 Run 的结果状态。
package service

import (
	"context"
	"time"

	"github.com/rushteam/bullpenkit/advisor"
	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/data"
	"github.com/rushteam/bullpenkit/filter"
	"github.com/rushteam/bullpenkit/pipeline"
	"github.com/rushteam/bullpenkit/stages"
	"github.com/rushteam/bullpenkit/statcast"
)

// Recommender 是推荐流水线的门面：Load → Score → Explain → Critique。
// 失败只来自 Load 无法恢复（DATA_UNAVAILABLE / UPSTREAM_FETCH_FAILED）；
// 其余情况（空排序、未配置凭据、解释遗漏姓名）降级为状态中的备注。
type Recommender struct {
	settings Settings

	loader    *data.PoolLoader
	refresher stages.Refresher
	advisor   advisor.Explainer
	filters   []filter.Filter

	pipe *pipeline.Pipeline
}

// Option 配置 Recommender
type Option func(*Recommender)

// WithRefresher 覆盖 refresh 协作方（测试注入用）
func WithRefresher(r stages.Refresher) Option {
	return func(rec *Recommender) { rec.refresher = r }
}

// WithAdvisor 覆盖文本顾问（测试注入用）
func WithAdvisor(a advisor.Explainer) Option {
	return func(rec *Recommender) { rec.advisor = a }
}

// WithFilters 追加加载后的资格过滤器
func WithFilters(filters ...filter.Filter) Option {
	return func(rec *Recommender) { rec.filters = append(rec.filters, filters...) }
}

// WithLoader 覆盖候选池加载器（共享缓存时使用）
func WithLoader(l *data.PoolLoader) Option {
	return func(rec *Recommender) { rec.loader = l }
}

// NewRecommender 按 Settings 组装流水线。
func NewRecommender(settings Settings, opts ...Option) *Recommender {
	rec := &Recommender{settings: settings}
	for _, opt := range opts {
		opt(rec)
	}

	if rec.loader == nil {
		var fallbacks []string
		if settings.FallbackPath != "" {
			fallbacks = append(fallbacks, settings.FallbackPath)
		}
		rec.loader = data.NewPoolLoader(fallbacks...)
	}
	if rec.refresher == nil {
		rec.refresher = statcast.NewRefresher(nil)
	}
	if rec.advisor == nil {
		var advOpts []advisor.Option
		if settings.LLMModel != "" {
			advOpts = append(advOpts, advisor.WithModel(settings.LLMModel))
		}
		rec.advisor = advisor.NewClient(settings.OpenAIAPIKey, advOpts...)
	}

	rec.pipe = &pipeline.Pipeline{
		Stages: []pipeline.Stage{
			&stages.LoadStage{
				Loader:     rec.loader,
				Path:       settings.DataPath,
				Refresher:  rec.refresher,
				MinInnings: settings.MinInnings,
				Filters:    rec.filters,
			},
			&stages.ScoreStage{},
			&stages.ExplainStage{Advisor: rec.advisor},
			&stages.CritiqueStage{},
		},
	}
	return rec
}

// Run 以给定对位上下文执行一次完整流水线，返回终态。
// 外部调用（LLM、refresh）在此层不设超时；需要截止时间的调用方
// 应通过 ctx 施加。
func (rec *Recommender) Run(ctx context.Context, matchup *core.MatchupContext) (*core.State, error) {
	return rec.pipe.Run(ctx, core.NewState(matchup))
}

// Refresh 主动重建主候选数据并使缓存失效，返回写出的行数。
func (rec *Recommender) Refresh(ctx context.Context, start, end time.Time, minInnings float64) (int, error) {
	rows, err := rec.refresher.Refresh(ctx, rec.settings.DataPath, start, end, minInnings)
	if err != nil {
		return 0, err
	}
	rec.loader.Invalidate(rec.settings.DataPath)
	return rows, nil
}
