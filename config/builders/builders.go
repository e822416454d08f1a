package builders

import (
	"fmt"
	"os"
	"time"

	"github.com/rushteam/bullpenkit/advisor"
	"github.com/rushteam/bullpenkit/config"
	"github.com/rushteam/bullpenkit/data"
	"github.com/rushteam/bullpenkit/filter"
	"github.com/rushteam/bullpenkit/pipeline"
	"github.com/rushteam/bullpenkit/pkg/conv"
	"github.com/rushteam/bullpenkit/stages"
	"github.com/rushteam/bullpenkit/statcast"
)

func init() {
	config.Register("load", BuildLoadStage)
	config.Register("score", BuildScoreStage)
	config.Register("explain", BuildExplainStage)
	config.Register("critique", BuildCritiqueStage)
}

func BuildLoadStage(cfg map[string]any) (pipeline.Stage, error) {
	path := conv.ConfigGet(cfg, "path", "")
	if path == "" {
		return nil, fmt.Errorf("path not found")
	}

	fallbacks := conv.SliceAnyToString(cfg["fallbacks"])
	stage := &stages.LoadStage{
		Loader:     data.NewPoolLoader(fallbacks...),
		Path:       path,
		MinInnings: conv.ConfigGetFloat64(cfg, "min_innings", statcast.DefaultMinInnings),
	}

	if conv.ConfigGet(cfg, "refresh", true) {
		var opts []statcast.Option
		if endpoint := conv.ConfigGet(cfg, "statcast_endpoint", ""); endpoint != "" {
			opts = append(opts, statcast.WithEndpoint(endpoint))
		}
		stage.Refresher = statcast.NewRefresher(statcast.NewClient(opts...))
	}

	if names := conv.SliceAnyToString(cfg["exclude"]); len(names) > 0 {
		stage.Filters = append(stage.Filters, &filter.ExcludeFilter{Names: names})
	}
	if expr := conv.ConfigGet(cfg, "rule", ""); expr != "" {
		stage.Filters = append(stage.Filters, &filter.RuleFilter{Expr: expr})
	}

	return stage, nil
}

func BuildScoreStage(_ map[string]any) (pipeline.Stage, error) {
	return &stages.ScoreStage{}, nil
}

func BuildExplainStage(cfg map[string]any) (pipeline.Stage, error) {
	apiKey := conv.ConfigGet(cfg, "api_key", "")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var opts []advisor.Option
	if model := conv.ConfigGet(cfg, "model", ""); model != "" {
		opts = append(opts, advisor.WithModel(model))
	}
	if endpoint := conv.ConfigGet(cfg, "endpoint", ""); endpoint != "" {
		opts = append(opts, advisor.WithEndpoint(endpoint))
	}
	if sec := conv.ConfigGetFloat64(cfg, "timeout", 0); sec > 0 {
		opts = append(opts, advisor.WithTimeout(time.Duration(sec)*time.Second))
	}

	return &stages.ExplainStage{Advisor: advisor.NewClient(apiKey, opts...)}, nil
}

func BuildCritiqueStage(_ map[string]any) (pipeline.Stage, error) {
	return &stages.CritiqueStage{}, nil
}
