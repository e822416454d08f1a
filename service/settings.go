package service

import (
	"os"
	"strconv"

	"github.com/rushteam/bullpenkit/statcast"
)

// Settings 是进程级配置，从环境变量读取。
//
// 环境变量：
//   - BULLPEN_DATA：主候选 CSV 路径
//   - BULLPEN_FALLBACK：主路径不可用时的候补 CSV 路径（可选）
//   - BULLPEN_MIN_INNINGS：refresh 时的最小局数门槛（可选，默认 5.0）
//   - OPENAI_API_KEY：设置后启用 LLM 解释
//   - LLM_MODEL：覆盖解释用的对话模型（可选）
type Settings struct {
	DataPath     string
	FallbackPath string
	MinInnings   float64

	OpenAIAPIKey string
	LLMModel     string
}

// DefaultDataPath 是未配置 BULLPEN_DATA 时的主数据路径。
const DefaultDataPath = "data/relievers.csv"

// LoadSettings 从环境变量构造 Settings。
func LoadSettings() Settings {
	s := Settings{
		DataPath:     os.Getenv("BULLPEN_DATA"),
		FallbackPath: os.Getenv("BULLPEN_FALLBACK"),
		MinInnings:   statcast.DefaultMinInnings,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		LLMModel:     os.Getenv("LLM_MODEL"),
	}
	if s.DataPath == "" {
		s.DataPath = DefaultDataPath
	}
	if raw := os.Getenv("BULLPEN_MIN_INNINGS"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			s.MinInnings = v
		}
	}
	return s
}
