// Package data 提供候选池的加载与缓存。
// 主来源是 CSV 文件；Store 快照与 Feast 特征库作为可替换来源。
package data

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rushteam/bullpenkit/core"
)

// Source 表示一个可复用的候选池来源（CSV 文件 / Store 快照 / 特征库）。
type Source interface {
	Name() string
	FetchPool(ctx context.Context) ([]*core.Reliever, error)
}

// FileSource 从本地 CSV 文件读取候选池。
// CSV 首行为列名，每行构造一个 Reliever。
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "data.file" }

func (s *FileSource) FetchPool(_ context.Context) ([]*core.Reliever, error) {
	return ReadPoolCSV(s.Path)
}

// ReadPoolCSV 读取一个 CSV 文件并解析为候选池。
// 文件缺失或没有任何数据行时返回 DATA_UNAVAILABLE。
func ReadPoolCSV(path string) ([]*core.Reliever, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("reliever data not found at %s", path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("no relievers were loaded from %s", path))
	}

	var pool []*core.Reliever
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		r, err := core.RelieverFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("parse csv %s: %w", path, err)
		}
		pool = append(pool, r)
	}

	if len(pool) == 0 {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("no relievers were loaded from %s", path))
	}
	return pool, nil
}

// StoreSource 从 core.Store 读取候选池 JSON 快照。
// 通常由离线任务或 Save 定期写入，生产环境可用 RedisStore 共享。
type StoreSource struct {
	Store core.Store
	Key   string // 例如 "bullpen:pool"
}

func (s *StoreSource) Name() string { return "data.store" }

func (s *StoreSource) FetchPool(ctx context.Context) ([]*core.Reliever, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("no pool snapshot at %s key %s", s.Store.Name(), s.Key))
	}
	var pool []*core.Reliever
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("decode pool snapshot: %w", err)
	}
	if len(pool) == 0 {
		return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
			fmt.Sprintf("empty pool snapshot at %s key %s", s.Store.Name(), s.Key))
	}
	return pool, nil
}

// Save 将候选池快照写回 Store，可选 TTL（秒）。
func (s *StoreSource) Save(ctx context.Context, pool []*core.Reliever, ttl ...int) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("encode pool snapshot: %w", err)
	}
	return s.Store.Set(ctx, s.Key, data, ttl...)
}
