// Package statcast 是 refresh 协作方：从 Baseball Savant 抓取逐球数据，
// 聚合为候选投手行并覆盖主 CSV。上游不可达或无数据满足过滤条件时
// 返回 UPSTREAM_FETCH_FAILED，流水线不再重试。
package statcast

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/bullpenkit/core"
)

// DefaultEndpoint 是 Statcast 搜索 CSV 导出接口。
const DefaultEndpoint = "https://baseballsavant.mlb.com/statcast_search/csv"

// Pitch 是一行逐球数据，只保留聚合所需的列。
type Pitch struct {
	Pitcher       string    // 投手 ID
	PlayerName    string    // 投手姓名
	Throws        string    // p_throws
	Stand         string    // 击球员站位
	Events        string    // 打席结果事件（可为空）
	Type          string    // 单球结果：B/S/X
	OutsOnPlay    int
	WOBAValue     float64
	WOBADenom     float64
	GameDate      time.Time
	InningTopBot  string
	HomeScore     int
	AwayScore     int
	PostHomeScore int
	PostAwayScore int
}

// Client 是 Statcast 搜索接口的 HTTP 客户端。
// 大日期窗口会按 ChunkDays 切片并发抓取（上游单次查询有行数上限）。
type Client struct {
	// Endpoint 服务地址，默认 DefaultEndpoint
	Endpoint string
	// ChunkDays 每个抓取分片覆盖的天数，默认 6
	ChunkDays int
	// MaxConcurrent 分片抓取的最大并发数，默认 3
	MaxConcurrent int
	// Timeout 单次请求超时
	Timeout time.Duration

	httpClient *http.Client
}

// Option 配置 Statcast 客户端
type Option func(*Client)

// WithEndpoint 设置服务地址（测试时指向 httptest 服务）
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.Endpoint = endpoint }
}

// WithChunkDays 设置分片天数
func WithChunkDays(days int) Option {
	return func(c *Client) {
		if days > 0 {
			c.ChunkDays = days
		}
	}
}

// WithMaxConcurrent 设置分片并发数
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.MaxConcurrent = n
		}
	}
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.Timeout = timeout
		if c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient 设置自定义 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		Endpoint:      DefaultEndpoint,
		ChunkDays:     6,
		MaxConcurrent: 3,
		Timeout:       60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// FetchPitches 抓取 [start, end] 窗口内的全部逐球数据。
// 窗口按 ChunkDays 切片并发抓取后合并；任一分片失败即整体失败
// （聚合需要完整窗口，缺片会算错 days_rest 与速率统计）。
func (c *Client) FetchPitches(ctx context.Context, start, end time.Time) ([]Pitch, error) {
	if end.Before(start) {
		return nil, core.NewDomainError(core.ModuleStatcast, core.ErrorCodeInvalidInput,
			fmt.Sprintf("start date %s after end date %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	chunks := splitWindow(start, end, c.ChunkDays)

	var (
		mu      sync.Mutex
		pitches []Pitch
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.MaxConcurrent)

	for _, win := range chunks {
		win := win
		eg.Go(func() error {
			part, err := c.fetchChunk(egCtx, win[0], win[1])
			if err != nil {
				return err
			}
			mu.Lock()
			pitches = append(pitches, part...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(pitches) == 0 {
		return nil, core.NewDomainError(core.ModuleStatcast, core.ErrorCodeUpstreamFetch,
			fmt.Sprintf("no statcast data returned between %s and %s",
				start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	sort.SliceStable(pitches, func(i, j int) bool {
		return pitches[i].GameDate.Before(pitches[j].GameDate)
	})
	return pitches, nil
}

func (c *Client) fetchChunk(ctx context.Context, start, end time.Time) ([]Pitch, error) {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("game_date_gt", start.Format("2006-01-02"))
	q.Set("game_date_lt", end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build statcast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStatcast, core.ErrorCodeUpstreamFetch,
			fmt.Sprintf("statcast fetch failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleStatcast, core.ErrorCodeUpstreamFetch,
			fmt.Sprintf("statcast fetch returned status %d", resp.StatusCode))
	}

	return parsePitchCSV(resp.Body)
}

// splitWindow 把 [start, end] 切成若干不重叠的 [from, to] 分片。
func splitWindow(start, end time.Time, chunkDays int) [][2]time.Time {
	if chunkDays <= 0 {
		chunkDays = 6
	}
	var chunks [][2]time.Time
	for from := start; !from.After(end); from = from.AddDate(0, 0, chunkDays) {
		to := from.AddDate(0, 0, chunkDays-1)
		if to.After(end) {
			to = end
		}
		chunks = append(chunks, [2]time.Time{from, to})
	}
	return chunks
}

// parsePitchCSV 按列名解析 Statcast CSV；未知列忽略，缺失数值按 0 处理
// （上游对无关列大量留空）。
func parsePitchCSV(r io.Reader) ([]Pitch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read statcast csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var pitches []Pitch
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read statcast csv: %w", err)
		}

		p := Pitch{
			Pitcher:       field(record, "pitcher"),
			PlayerName:    field(record, "player_name"),
			Throws:        field(record, "p_throws"),
			Stand:         field(record, "stand"),
			Events:        field(record, "events"),
			Type:          field(record, "type"),
			OutsOnPlay:    atoiOrZero(field(record, "outs_when_up_delta"), field(record, "outs_on_play")),
			WOBAValue:     atofOrZero(field(record, "woba_value")),
			WOBADenom:     atofOrZero(field(record, "woba_denom")),
			InningTopBot:  field(record, "inning_topbot"),
			HomeScore:     int(atofOrZero(field(record, "home_score"))),
			AwayScore:     int(atofOrZero(field(record, "away_score"))),
			PostHomeScore: int(atofOrZero(field(record, "post_home_score"))),
			PostAwayScore: int(atofOrZero(field(record, "post_away_score"))),
		}
		if d := field(record, "game_date"); d != "" {
			if t, err := time.Parse("2006-01-02", d); err == nil {
				p.GameDate = t
			}
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

func atoiOrZero(candidates ...string) int {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func atofOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
