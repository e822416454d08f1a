// Package scoring 实现候选投手的确定性打分与排序。
// 打分是四个归一化项加休息惩罚的加权和；权重随局势分层微调。
// 所有项都经过 clamp 吸收病态输入（如 ERA 为零），不产生错误。
package scoring

import (
	"math"
	"sort"

	"github.com/rushteam/bullpenkit/core"
)

// TopN 是排序阶段保留的候选数量。
const TopN = 3

// Weights 是打分各项的权重。基准权重之和为 1.0；
// 局势调整直接加减，不再归一化。
type Weights struct {
	ERA     float64
	WHIP    float64
	KBB     float64
	Platoon float64
	Rest    float64
}

// WeightsFor 返回给定局势分层下的权重：
//   - high：platoon +0.05、whip +0.05、kbb -0.05（对位与压制更重要）
//   - low：platoon -0.05、kbb +0.05
//   - medium：基准不变
func WeightsFor(leverage core.Leverage) Weights {
	w := Weights{ERA: 0.30, WHIP: 0.25, KBB: 0.20, Platoon: 0.20, Rest: 0.05}
	switch leverage {
	case core.LeverageHigh:
		w.Platoon += 0.05
		w.WHIP += 0.05
		w.KBB -= 0.05
	case core.LeverageLow:
		w.Platoon -= 0.05
		w.KBB += 0.05
	}
	return w
}

func clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}

// platoonAdvantage 将对位 wOBA 归一化到 [0,1]；wOBA 越低对投手越有利。
func platoonAdvantage(r *core.Reliever, batter core.Side) float64 {
	return clamp01((0.450 - r.VsWOBA(batter)) / 0.450)
}

// Score 计算候选投手在给定对位与局势下的适配度得分，
// 四舍五入到 4 位小数。对越界输入不报错，由 clamp 吸收。
func Score(r *core.Reliever, batter core.Side, leverage core.Leverage) float64 {
	w := WeightsFor(leverage)

	eraTerm := clamp01(3.5 / math.Max(0.01, r.ERA))
	whipTerm := clamp01(1.3 / math.Max(0.01, r.WHIP))
	kbbTerm := clamp01((r.KPer9 - r.BBPer9 + 5) / 15)
	platoonTerm := platoonAdvantage(r, batter)
	restTerm := 0.0
	if r.DaysRest < 1 {
		restTerm = -0.5
	}

	total := w.ERA*eraTerm +
		w.WHIP*whipTerm +
		w.KBB*kbbTerm +
		w.Platoon*platoonTerm +
		w.Rest*restTerm

	return round4(total)
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// Rank 对候选池打分并排序：
//  1. 按名单排除候选（大小写不敏感、去空格）
//  2. 逐个打分
//  3. 按得分降序稳定排序（同分保持池内原始顺序，无二级排序键）
//  4. 返回前 TopN 名，同时给出纯列表与 (候选, 得分) 配对
//
// 空池或全部被排除时返回空排序，不是错误；调用方应将空排序
// 视为"无可推荐"。
func Rank(
	pool []*core.Reliever,
	batter core.Side,
	leverage core.Leverage,
	exclude []string,
) ([]*core.Reliever, []core.ScoredReliever) {
	excluded := normalizeNames(exclude)

	scored := make([]core.ScoredReliever, 0, len(pool))
	for _, r := range pool {
		if r == nil {
			continue
		}
		if _, skip := excluded[normalizeName(r.Name)]; skip {
			continue
		}
		scored = append(scored, core.ScoredReliever{
			Reliever: r,
			Score:    Score(r, batter, leverage),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > TopN {
		scored = scored[:TopN]
	}

	top := make([]*core.Reliever, 0, len(scored))
	for _, pair := range scored {
		top = append(top, pair.Reliever)
	}
	return top, scored
}
