package pipeline

import (
	"context"

	"github.com/rushteam/bullpenkit/core"
)

// Pipeline 是 bullpenkit 的核心抽象：把推荐流程拆成线性串联的 Stage。
// 固定顺序执行，无分支无回退；任一 Stage 返回错误即终止。
type Pipeline struct {
	Stages []Stage
}

func (p *Pipeline) Run(ctx context.Context, state *core.State) (*core.State, error) {
	cur := state
	for _, stage := range p.Stages {
		next, err := stage.Process(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
