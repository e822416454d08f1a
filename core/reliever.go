package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Side 表示投打方向："L" 或 "R"。
// 同时用于击球员站位（batter side）与投手惯用手（throws）。
type Side string

const (
	SideLeft  Side = "L"
	SideRight Side = "R"
)

// ParseSide 规范化投打方向：去空格、转大写，只接受 L/R。
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return SideLeft, nil
	case "R":
		return SideRight, nil
	}
	return "", NewDomainError(ModuleData, ErrorCodeInvalidInput,
		fmt.Sprintf("invalid side %q (want L or R)", s))
}

// Reliever 是候选牛棚投手的不可变值对象：
// 构造后只读，生命周期由 data.PoolLoader 的缓存池管理，refresh 时整体失效。
//
// 字段分三类：
//   - 速率统计（ERA/WHIP/K9/BB9/wOBA 左右拆分/休息天数）：打分器的输入
//   - 身份（Name/Team/Throws）
//   - 累计计数统计（Hits 等）：仅用于展示透传，不参与打分
type Reliever struct {
	Name   string `json:"name"`
	Team   string `json:"team,omitempty"`
	Throws Side   `json:"throws"`

	ERA      float64 `json:"era"`
	WHIP     float64 `json:"whip"`
	KPer9    float64 `json:"k9"`
	BBPer9   float64 `json:"bb9"`
	VsLeft   float64 `json:"vsL_woba"`  // 对左打 wOBA（越低对投手越有利）
	VsRight  float64 `json:"vsR_woba"`  // 对右打 wOBA
	DaysRest int     `json:"days_rest"` // 距上次登板的天数，0 表示连投疲劳风险

	Hits          int `json:"hits,omitempty"`
	ExtraBaseHits int `json:"extra_base_hits,omitempty"`
	HomeRuns      int `json:"home_runs,omitempty"`
	TotalBases    int `json:"total_bases,omitempty"`
	RunsBattedIn  int `json:"runs_batted_in,omitempty"`
	Walks         int `json:"walks,omitempty"`
	Balls         int `json:"balls,omitempty"`
	Strikes       int `json:"strikes,omitempty"`
}

// VsWOBA 返回对给定击球方向的 wOBA 拆分。
func (r *Reliever) VsWOBA(batter Side) float64 {
	if batter == SideLeft {
		return r.VsLeft
	}
	return r.VsRight
}

// RelieverFromRow 从一行表格数据（列名 -> 字符串值）构造 Reliever。
// 不变量在此集中校验：throws 规范化为 L/R，速率统计非负，days_rest 非负。
// 计数统计列可缺省（缺省为 0），便于兼容只含速率统计的旧数据。
func RelieverFromRow(row map[string]string) (*Reliever, error) {
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return nil, NewDomainError(ModuleData, ErrorCodeInvalidInput, "reliever row missing name")
	}

	throws, err := ParseSide(row["throws"])
	if err != nil {
		return nil, fmt.Errorf("reliever %q: %w", name, err)
	}

	r := &Reliever{
		Name:   name,
		Team:   strings.TrimSpace(row["team"]),
		Throws: throws,
	}

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
		v, err := parseRate(name, f.key, row[f.key])
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	rest, err := strconv.Atoi(strings.TrimSpace(row["days_rest"]))
	if err != nil || rest < 0 {
		return nil, NewDomainError(ModuleData, ErrorCodeInvalidInput,
			fmt.Sprintf("reliever %q: invalid days_rest %q", name, row["days_rest"]))
	}
	r.DaysRest = rest

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"hits", &r.Hits},
		{"extra_base_hits", &r.ExtraBaseHits},
		{"home_runs", &r.HomeRuns},
		{"total_bases", &r.TotalBases},
		{"runs_batted_in", &r.RunsBattedIn},
		{"walks", &r.Walks},
		{"balls", &r.Balls},
		{"strikes", &r.Strikes},
	} {
		raw, ok := row[f.key]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return nil, NewDomainError(ModuleData, ErrorCodeInvalidInput,
				fmt.Sprintf("reliever %q: invalid %s %q", name, f.key, raw))
		}
		*f.dst = n
	}

	return r, nil
}

func parseRate(name, key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0, NewDomainError(ModuleData, ErrorCodeInvalidInput,
			fmt.Sprintf("reliever %q: invalid %s %q", name, key, raw))
	}
	return v, nil
}
