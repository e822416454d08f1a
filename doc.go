// Package bullpenkit 是一个牛棚换投推荐工具包（Bullpen Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐流程由四个线性 Stage 串联（Load → Score → Explain → Critique）
// - Notes-first: 状态自带备注贯穿全链路，支持 explain / 观测 / 事后评审
// - 恢复集中在 Load: 主数据缺失时触发一次 Statcast refresh 并重试，仅此一次
package bullpenkit

import "github.com/rushteam/bullpenkit/pipeline"

// 轻量 facade：便于用户直接 import "bullpenkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Stage = pipeline.Stage
type Kind = pipeline.Kind

const (
	KindLoad     = pipeline.KindLoad
	KindScore    = pipeline.KindScore
	KindExplain  = pipeline.KindExplain
	KindCritique = pipeline.KindCritique
)
