package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/bullpenkit/pipeline"
)

// 使用配置驱动时，需在 main 或入口处 import _ "github.com/rushteam/bullpenkit/config/builders"
// 以触发内置 Stage（load、score、explain、critique）的 init 注册。

// StageBuilder 与 pipeline.StageBuilder 一致：根据 config 构建 Stage。
// 各组件在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type StageBuilder = pipeline.StageBuilder

var (
	defaultBuilders   = make(map[string]StageBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Stage 的构建逻辑，供 DefaultFactory 与配置驱动使用。
// 建议在各组件的 init 中调用，例如：func init() { config.Register("load", BuildLoadStage) }
func Register(typeName string, builder StageBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Stage 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表构建的 StageFactory，包含所有通过 Register 注册的 Stage 类型。
func DefaultFactory() *pipeline.StageFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewStageFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 stage 类型均已注册；若有未支持类型则返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	supported := SupportedTypes()
	for _, sc := range cfg.Pipeline.Stages {
		if sc.Type == "" {
			continue
		}
		defaultBuildersMu.RLock()
		_, ok := defaultBuilders[sc.Type]
		defaultBuildersMu.RUnlock()
		if !ok {
			return fmt.Errorf("unsupported stage type %q (supported: %v)", sc.Type, supported)
		}
	}
	return nil
}
