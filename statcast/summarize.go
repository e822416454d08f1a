package statcast

import (
	"math"
	"sort"
	"time"

	"github.com/rushteam/bullpenkit/core"
)

// 打席结果事件分类，与速率统计的口径保持一致。
var (
	hitEvents = map[string]bool{
		"single":      true,
		"double":      true,
		"triple":      true,
		"home_run":    true,
		"grand_slam":  true,
		"double_play": true,
		"triple_play": true,
		"force_out":   true,
	}
	walkEvents = map[string]bool{
		"walk":         true,
		"intent_walk":  true,
		"hit_by_pitch": true,
	}
	strikeoutEvents = map[string]bool{
		"strikeout":             true,
		"strikeout_double_play": true,
		"strikeout_triple_play": true,
	}
	extraBaseEvents = map[string]bool{
		"double":     true,
		"triple":     true,
		"home_run":   true,
		"grand_slam": true,
	}
	totalBasesByEvent = map[string]int{
		"single":     1,
		"double":     2,
		"triple":     3,
		"home_run":   4,
		"grand_slam": 4,
	}
)

// SeasonStartFor 返回给定日期所在年份的 3 月 1 日，作为默认抓取起点。
func SeasonStartFor(day time.Time) time.Time {
	return time.Date(day.Year(), time.March, 1, 0, 0, 0, 0, day.Location())
}

// Summary 是单个投手的聚合结果：候选记录加上用于过滤的投球局数。
type Summary struct {
	Reliever *core.Reliever
	Innings  float64
}

// Summarize 把逐球数据按投手聚合为候选记录。
//
// 口径（与速率统计的定义一一对应）：
//   - 局数 = 出局数 / 3
//   - ERA = 失分 * 9 / 局数；WHIP = (保送+安打)/局数；K9/BB9 同理
//   - wOBA 拆分 = Σwoba_value / Σwoba_denom，按击球员站位分组，保留 3 位
//   - days_rest = endDate 与最后登板日之差
//   - 计数统计（安打/长打/本垒打/垒打数/打点/保送/坏球/好球）为透传展示数据
//
// 姓名或惯用手无法确定的投手被跳过。
func Summarize(pitches []Pitch, endDate time.Time) []Summary {
	byPitcher := make(map[string][]Pitch)
	order := make([]string, 0)
	for _, p := range pitches {
		if p.Pitcher == "" {
			continue
		}
		if _, ok := byPitcher[p.Pitcher]; !ok {
			order = append(order, p.Pitcher)
		}
		byPitcher[p.Pitcher] = append(byPitcher[p.Pitcher], p)
	}
	sort.Strings(order)

	summaries := make([]Summary, 0, len(order))
	for _, id := range order {
		if s, ok := summarizePitcher(byPitcher[id], endDate); ok {
			summaries = append(summaries, s)
		}
	}
	return summaries
}

func summarizePitcher(frame []Pitch, endDate time.Time) (Summary, bool) {
	name := mode(frame, func(p Pitch) string { return p.PlayerName })
	throws := mode(frame, func(p Pitch) string { return p.Throws })
	if name == "" || throws == "" {
		return Summary{}, false
	}
	side, err := core.ParseSide(throws)
	if err != nil {
		return Summary{}, false
	}

	var (
		outs                      int
		hits, walks, strikeouts   int
		runs                      int
		xbh, homeRuns, totalBases int
		rbi                       int
		balls, strikes            int
		lastGame                  time.Time
	)

	var wobaL, wobaR wobaAcc
	for _, p := range frame {
		outs += p.OutsOnPlay
		scored := runsScored(p)
		runs += scored

		if p.Events != "" {
			switch {
			case hitEvents[p.Events]:
				hits++
			case walkEvents[p.Events]:
				walks++
			case strikeoutEvents[p.Events]:
				strikeouts++
			}
			if extraBaseEvents[p.Events] {
				xbh++
			}
			if p.Events == "home_run" || p.Events == "grand_slam" {
				homeRuns++
			}
			totalBases += totalBasesByEvent[p.Events]
			rbi += scored
		}

		switch p.Type {
		case "B":
			balls++
		case "S":
			strikes++
		}

		switch p.Stand {
		case "L":
			wobaL.add(p)
		case "R":
			wobaR.add(p)
		}

		if p.GameDate.After(lastGame) {
			lastGame = p.GameDate
		}
	}

	innings := float64(outs) / 3.0

	var era, whip, k9, bb9 float64
	if innings > 0 {
		era = round2(float64(runs) * 9.0 / innings)
		whip = round3(float64(walks+hits) / innings)
		k9 = round2(float64(strikeouts) * 9.0 / innings)
		bb9 = round2(float64(walks) * 9.0 / innings)
	}

	daysRest := 0
	if !lastGame.IsZero() {
		daysRest = int(endDate.Sub(lastGame).Hours() / 24)
	}

	return Summary{
		Reliever: &core.Reliever{
			Name:          name,
			Throws:        side,
			ERA:           era,
			WHIP:          whip,
			KPer9:         k9,
			BBPer9:        bb9,
			VsLeft:        wobaL.value(),
			VsRight:       wobaR.value(),
			DaysRest:      daysRest,
			Hits:          hits,
			ExtraBaseHits: xbh,
			HomeRuns:      homeRuns,
			TotalBases:    totalBases,
			RunsBattedIn:  rbi,
			Walks:         walks,
			Balls:         balls,
			Strikes:       strikes,
		},
		Innings: round2(innings),
	}, true
}

// runsScored 从半局的比分差推算该球造成的失分。
func runsScored(p Pitch) int {
	if p.InningTopBot == "Top" {
		return p.PostAwayScore - p.AwayScore
	}
	return p.PostHomeScore - p.HomeScore
}

type wobaAcc struct {
	value64 float64
	denom   float64
}

func (a *wobaAcc) add(p Pitch) {
	a.value64 += p.WOBAValue
	a.denom += p.WOBADenom
}

func (a *wobaAcc) value() float64 {
	if a.denom <= 0 {
		return 0
	}
	return round3(a.value64 / a.denom)
}

// mode 返回出现次数最多的非空取值（平手时取字典序最小，保证确定性）。
func mode(frame []Pitch, pick func(Pitch) string) string {
	counts := make(map[string]int)
	for _, p := range frame {
		if v := pick(p); v != "" {
			counts[v]++
		}
	}
	best, bestN := "", 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
