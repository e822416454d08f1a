package data

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rushteam/bullpenkit/core"
)

// PoolLoader 是候选池的带缓存加载器：同一路径最多加载一次，
// 直到被显式 Invalidate（refresh 覆盖主数据后由调用方失效）。
//
// 缓存是显式传入的对象而非包级单例，便于测试与多实例；
// 并发加载同一路径时用 singleflight 合并为一次读取
// （重复读取同一未变文件是幂等的，合并只是省去冗余 IO）。
type PoolLoader struct {
	mu    sync.RWMutex
	pools map[string][]*core.Reliever
	group singleflight.Group

	// Fallbacks 是主路径不可用时依次尝试的候补路径（如样例数据），
	// 全部失败才返回 DATA_UNAVAILABLE。
	Fallbacks []string
}

func NewPoolLoader(fallbacks ...string) *PoolLoader {
	return &PoolLoader{
		pools:     make(map[string][]*core.Reliever),
		Fallbacks: fallbacks,
	}
}

// Load 返回路径对应的候选池；命中缓存时不触发任何 IO。
// 主路径与候补路径都无法产出非空池时返回 DATA_UNAVAILABLE。
func (l *PoolLoader) Load(ctx context.Context, path string) ([]*core.Reliever, error) {
	l.mu.RLock()
	pool, ok := l.pools[path]
	l.mu.RUnlock()
	if ok {
		return pool, nil
	}

	v, err, _ := l.group.Do(path, func() (any, error) {
		// double check：singleflight 等待者在前一个加载完成后进入
		l.mu.RLock()
		cached, ok := l.pools[path]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		pool, err := l.read(path)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.pools[path] = pool
		l.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*core.Reliever), nil
}

func (l *PoolLoader) read(path string) ([]*core.Reliever, error) {
	candidates := append([]string{path}, l.Fallbacks...)

	var lastErr error
	for _, p := range candidates {
		if p == "" {
			continue
		}
		pool, err := ReadPoolCSV(p)
		if err != nil {
			if core.IsDataUnavailable(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return pool, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, core.NewDomainError(core.ModuleData, core.ErrorCodeDataUnavailable,
		"no reliever data could be loaded from any configured path")
}

// Invalidate 使指定路径的缓存失效；refresh 覆盖主数据后必须调用。
func (l *PoolLoader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.pools, path)
	l.mu.Unlock()
}

// InvalidateAll 清空全部缓存。
func (l *PoolLoader) InvalidateAll() {
	l.mu.Lock()
	l.pools = make(map[string][]*core.Reliever)
	l.mu.Unlock()
}
