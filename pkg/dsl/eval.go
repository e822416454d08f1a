package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/bullpenkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("reliever", cel.DynType),
		cel.Variable("matchup", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选资格规则的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：reliever.era < 6.0 / reliever.days_rest >= 1
//   - 逻辑：reliever.whip < 1.5 && reliever.k9 > 8.0
//   - 对位：matchup.batter == "L" / matchup.leverage == "high"
//   - 字符串：reliever.throws == "R"
//
// 示例：
//   - `reliever.days_rest >= 1` → 只保留至少休息一天的候选
//   - `matchup.leverage == "high" ? reliever.era < 4.0 : true` → 高压时收紧门槛
type Eval struct {
	reliever *core.Reliever
	matchup  *core.MatchupContext
	env      *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(reliever *core.Reliever, matchup *core.MatchupContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		reliever: reliever,
		matchup:  matchup,
		env:      env,
	}
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式恒为 true（不设限制）。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	reliever := map[string]any{}
	if e.reliever != nil {
		reliever = map[string]any{
			"name":      e.reliever.Name,
			"team":      e.reliever.Team,
			"throws":    string(e.reliever.Throws),
			"era":       e.reliever.ERA,
			"whip":      e.reliever.WHIP,
			"k9":        e.reliever.KPer9,
			"bb9":       e.reliever.BBPer9,
			"vsL_woba":  e.reliever.VsLeft,
			"vsR_woba":  e.reliever.VsRight,
			"days_rest": e.reliever.DaysRest,
		}
	}

	matchup := map[string]any{}
	if e.matchup != nil {
		matchup = map[string]any{
			"batter":   string(e.matchup.Batter),
			"leverage": string(e.matchup.Leverage),
			"params":   e.matchup.Params,
		}
	}

	return map[string]any{
		"reliever": reliever,
		"matchup":  matchup,
	}
}
