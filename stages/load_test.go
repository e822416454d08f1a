package stages

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rushteam/bullpenkit/core"
	"github.com/rushteam/bullpenkit/data"
	"github.com/rushteam/bullpenkit/filter"
)

const poolCSV = `name,throws,era,whip,k9,bb9,vsL_woba,vsR_woba,days_rest
Ace Closer,R,2.00,0.90,12.0,2.0,0.250,0.260,2
Solid Setup,L,3.00,1.10,10.0,3.0,0.300,0.310,1
Tired Arm,R,2.50,1.00,11.0,2.5,0.280,0.270,0
`

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newMatchup(t *testing.T) *core.MatchupContext {
	t.Helper()
	m, err := core.NewMatchupContext("R", "medium", nil)
	if err != nil {
		t.Fatalf("NewMatchupContext: %v", err)
	}
	return m
}

// fakeRefresher records calls and either writes a pool CSV or fails.
type fakeRefresher struct {
	calls int
	rows  string // CSV written on success
	err   error
}

func (f *fakeRefresher) Refresh(_ context.Context, outputPath string, _, _ time.Time, _ float64) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if err := os.WriteFile(outputPath, []byte(f.rows), 0o644); err != nil {
		return 0, err
	}
	return 3, nil
}

func TestLoadStage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relievers.csv")
	writeCSV(t, path, poolCSV)

	stage := &LoadStage{Loader: data.NewPoolLoader(), Path: path}
	state := core.NewState(newMatchup(t))

	out, err := stage.Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Pool) != 3 {
		t.Errorf("Pool = %d relievers, want 3", len(out.Pool))
	}
	if len(out.Notes) != 0 {
		t.Errorf("Notes = %v, want none on the happy path", out.Notes)
	}
}

func TestLoadStageRefreshesOnMissingData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relievers.csv") // never written up front

	refresher := &fakeRefresher{rows: poolCSV}
	stage := &LoadStage{Loader: data.NewPoolLoader(), Path: path, Refresher: refresher, MinInnings: 5.0}
	state := core.NewState(newMatchup(t))

	out, err := stage.Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if refresher.calls != 1 {
		t.Errorf("Refresh called %d times, want exactly 1", refresher.calls)
	}
	if len(out.Pool) != 3 {
		t.Errorf("Pool = %d relievers after refresh, want 3", len(out.Pool))
	}
	if len(out.Notes) != 1 || out.Notes[0] != "Auto-refreshed reliever CSV with 3 Statcast rows." {
		t.Errorf("Notes = %v", out.Notes)
	}
}

func TestLoadStageRefreshFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relievers.csv")

	refresher := &fakeRefresher{
		err: core.NewDomainError(core.ModuleStatcast, core.ErrorCodeUpstreamFetch, "statcast fetch failed"),
	}
	stage := &LoadStage{Loader: data.NewPoolLoader(), Path: path, Refresher: refresher}
	state := core.NewState(newMatchup(t))

	_, err := stage.Process(context.Background(), state)
	if !core.IsUpstreamFetchFailed(err) {
		t.Fatalf("Process() error = %v, want UPSTREAM_FETCH_FAILED", err)
	}
	if refresher.calls != 1 {
		t.Errorf("Refresh called %d times, want exactly 1 (no second retry)", refresher.calls)
	}
	if len(state.Notes) != 1 || state.Notes[0] != "Statcast refresh failed: statcast fetch failed" {
		t.Errorf("Notes = %v", state.Notes)
	}
}

func TestLoadStageNoRefresherPropagatesUnavailable(t *testing.T) {
	dir := t.TempDir()
	stage := &LoadStage{Loader: data.NewPoolLoader(), Path: filepath.Join(dir, "missing.csv")}
	state := core.NewState(newMatchup(t))

	if _, err := stage.Process(context.Background(), state); !core.IsDataUnavailable(err) {
		t.Errorf("Process() error = %v, want DATA_UNAVAILABLE", err)
	}
}

func TestLoadStageAppliesFilters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relievers.csv")
	writeCSV(t, path, poolCSV)

	stage := &LoadStage{
		Loader:  data.NewPoolLoader(),
		Path:    path,
		Filters: []filter.Filter{&filter.RuleFilter{Expr: `reliever.days_rest >= 1`}},
	}
	state := core.NewState(newMatchup(t))

	out, err := stage.Process(context.Background(), state)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Pool) != 2 {
		t.Fatalf("Pool = %d relievers after rule filter, want 2", len(out.Pool))
	}
	for _, r := range out.Pool {
		if r.Name == "Tired Arm" {
			t.Error("Tired Arm should have been filtered on days_rest")
		}
	}
	if len(out.Notes) != 1 || out.Notes[0] != "Eligibility filters removed 1 candidate(s)." {
		t.Errorf("Notes = %v", out.Notes)
	}
}
