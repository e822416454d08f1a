package pipeline

import (
	"context"

	"github.com/rushteam/bullpenkit/core"
)

// Kind 用于标记 Stage 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindLoad     Kind = "load"     // 加载阶段：填充候选池（含一次性 refresh 恢复）
	KindScore    Kind = "score"    // 打分阶段：确定性打分并排序
	KindExplain  Kind = "explain"  // 解释阶段：可选的自然语言解释
	KindCritique Kind = "critique" // 评审阶段：校验解释是否引用了榜首候选
)

// Stage 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 state -> 输出 state"的形态：阶段只追加字段与备注，
// 不清空先行阶段已写入的内容。
type Stage interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, state *core.State) (*core.State, error)
}
