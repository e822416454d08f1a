package statcast

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rushteam/bullpenkit/core"
)

// DefaultMinInnings 是候选入围的默认最小局数。
const DefaultMinInnings = 5.0

// Refresher 重建主候选 CSV：抓取窗口内逐球数据、聚合、过滤、覆盖写出。
// 这是 Load 阶段唯一的恢复协作方；它自身失败（UPSTREAM_FETCH_FAILED）
// 即为终局失败。
type Refresher struct {
	Client *Client
}

func NewRefresher(client *Client) *Refresher {
	if client == nil {
		client = NewClient()
	}
	return &Refresher{Client: client}
}

// Refresh 抓取 [start, end] 的数据并覆盖 outputPath，返回写出的行数。
// start 为零值时取 end 所在赛季的 3 月 1 日；end 为零值时取当天。
// 入围条件：era > 0、days_rest >= 0、局数 >= minInnings；
// 无人入围时返回 UPSTREAM_FETCH_FAILED。
func (f *Refresher) Refresh(
	ctx context.Context,
	outputPath string,
	start, end time.Time,
	minInnings float64,
) (int, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = SeasonStartFor(end)
	}
	if minInnings < 0 {
		minInnings = DefaultMinInnings
	}

	pitches, err := f.Client.FetchPitches(ctx, start, end)
	if err != nil {
		return 0, err
	}

	summaries := Summarize(pitches, end)

	filtered := make([]*core.Reliever, 0, len(summaries))
	for _, s := range summaries {
		if s.Reliever.ERA > 0 && s.Reliever.DaysRest >= 0 && s.Innings >= minInnings {
			filtered = append(filtered, s.Reliever)
		}
	}
	if len(filtered) == 0 {
		return 0, core.NewDomainError(core.ModuleStatcast, core.ErrorCodeUpstreamFetch,
			"no relievers met the filtering criteria for the provided window")
	}

	// 输出按 era 升序、whip 次级升序，便于人工查看
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].ERA != filtered[j].ERA {
			return filtered[i].ERA < filtered[j].ERA
		}
		return filtered[i].WHIP < filtered[j].WHIP
	})

	if err := WritePoolCSV(filtered, outputPath); err != nil {
		return 0, err
	}
	return len(filtered), nil
}

// poolColumns 是主 CSV 的列顺序，与 core.RelieverFromRow 的列名一致。
var poolColumns = []string{
	"name", "throws", "era", "whip", "k9", "bb9",
	"vsL_woba", "vsR_woba", "days_rest",
	"hits", "extra_base_hits", "home_runs", "total_bases",
	"runs_batted_in", "walks", "balls", "strikes",
}

// WritePoolCSV 将候选池覆盖写出为 CSV（父目录不存在时创建）。
func WritePoolCSV(pool []*core.Reliever, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	fh, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	if err := w.Write(poolColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range pool {
		record := []string{
			r.Name,
			string(r.Throws),
			formatFloat(r.ERA),
			formatFloat(r.WHIP),
			formatFloat(r.KPer9),
			formatFloat(r.BBPer9),
			formatFloat(r.VsLeft),
			formatFloat(r.VsRight),
			strconv.Itoa(r.DaysRest),
			strconv.Itoa(r.Hits),
			strconv.Itoa(r.ExtraBaseHits),
			strconv.Itoa(r.HomeRuns),
			strconv.Itoa(r.TotalBases),
			strconv.Itoa(r.RunsBattedIn),
			strconv.Itoa(r.Walks),
			strconv.Itoa(r.Balls),
			strconv.Itoa(r.Strikes),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
