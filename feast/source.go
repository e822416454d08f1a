package feast

import (
	"context"
	"fmt"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/data"
	"github.com/rushteam/bullpenkit/pkg/conv"
)

// 特征库中候选统计的默认特征视图与实体键。
const (
	DefaultFeatureView = "reliever_stats"
	DefaultEntityKey   = "reliever_name"
)

// statFeatures 是构造候选记录所需的特征名（不含视图前缀）。
var statFeatures = []string{
	"throws", "era", "whip", "k9", "bb9",
	"vsL_woba", "vsR_woba", "days_rest",
}

// PoolSource 把 Feast 在线特征库作为候选池来源：
// 按给定姓名批量读取速率统计并组装候选记录。
// 适合统计由特征平台统一维护、多服务共享的部署形态。
type PoolSource struct {
	Client Client
	// Names 是要读取的候选姓名（实体 ID）
	Names []string
	// FeatureView 特征视图名，默认 DefaultFeatureView
	FeatureView string
	// EntityKey 实体键名，默认 DefaultEntityKey
	EntityKey string
}

var _ data.Source = (*PoolSource)(nil)

func (s *PoolSource) Name() string { return "data.feast" }

func (s *PoolSource) FetchPool(ctx context.Context) ([]*core.Reliever, error) {
	if s.Client == nil || len(s.Names) == 0 {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			"feast pool source not configured")
	}

	view := s.FeatureView
	if view == "" {
		view = DefaultFeatureView
	}
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	features := make([]string, 0, len(statFeatures))
	for _, f := range statFeatures {
		features = append(features, view+":"+f)
	}
	entityRows := make([]map[string]any, 0, len(s.Names))
	for _, name := range s.Names {
		entityRows = append(entityRows, map[string]any{entityKey: name})
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("feast pool fetch failed: %v", err))
	}

	pool := make([]*core.Reliever, 0, len(resp.FeatureVectors))
	for i, fv := range resp.FeatureVectors {
		r, ok := relieverFromVector(s.Names[i], view, fv.Values)
		if !ok {
			continue
		}
		pool = append(pool, r)
	}

	if len(pool) == 0 {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			"feast returned no usable reliever features")
	}
	return pool, nil
}

// relieverFromVector 把一条特征向量组装为候选记录；关键特征缺失时丢弃该行。
func relieverFromVector(name, view string, values map[string]any) (*core.Reliever, bool) {
	get := func(feature string) (any, bool) {
		v, ok := values[view+":"+feature]
		return v, ok
	}

	rawThrows, ok := get("throws")
	if !ok {
		return nil, false
	}
	throws, err := core.ParseSide(fmt.Sprintf("%v", rawThrows))
	if err != nil {
		return nil, false
	}

	r := &core.Reliever{Name: name, Throws: throws}
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"era", &r.ERA},
		{"whip", &r.WHIP},
		{"k9", &r.KPer9},
		{"bb9", &r.BBPer9},
		{"vsL_woba", &r.VsLeft},
		{"vsR_woba", &r.VsRight},
	} {
		raw, ok := get(f.key)
		if !ok {
			return nil, false
		}
		v, ok := conv.ToFloat64(raw)
		if !ok || v < 0 {
			return nil, false
		}
		*f.dst = v
	}

	if raw, ok := get("days_rest"); ok {
		if v, ok := conv.ToFloat64(raw); ok && v >= 0 {
			r.DaysRest = int(v)
		}
	}
	return r, true
}
