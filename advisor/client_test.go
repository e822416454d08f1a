package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rushteam/bullpenkit/core"
)

func chatServer(t *testing.T, status int, reply string) (*httptest.Server, *chatRequest) {
	t.Helper()
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": reply}},
				},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestGenerate(t *testing.T) {
	srv, captured := chatServer(t, http.StatusOK, "  Ace Closer is the right call.  ")
	c := NewClient("test-key", WithEndpoint(srv.URL), WithModel("test-model"))

	text, ok := c.Generate(context.Background(), "system prompt", map[string]any{"inning": 8})
	if !ok {
		t.Fatal("Generate() ok = false, want true")
	}
	if text != "Ace Closer is the right call." {
		t.Errorf("Generate() = %q, want trimmed reply", text)
	}

	if captured.Model != "test-model" {
		t.Errorf("request model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, `"inning":8`) {
		t.Errorf("user message = %q, payload not serialized", captured.Messages[1].Content)
	}
}

func TestGenerateAbsent(t *testing.T) {
	tests := []struct {
		name   string
		client func(t *testing.T) *Client
	}{
		{
			name: "unconfigured",
			client: func(t *testing.T) *Client {
				return NewClient("")
			},
		},
		{
			name: "server error",
			client: func(t *testing.T) *Client {
				srv, _ := chatServer(t, http.StatusInternalServerError, "")
				return NewClient("test-key", WithEndpoint(srv.URL))
			},
		},
		{
			name: "empty choices",
			client: func(t *testing.T) *Client {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(`{"choices":[]}`))
				}))
				t.Cleanup(srv.Close)
				return NewClient("test-key", WithEndpoint(srv.URL))
			},
		},
		{
			name: "blank content",
			client: func(t *testing.T) *Client {
				srv, _ := chatServer(t, http.StatusOK, "   ")
				return NewClient("test-key", WithEndpoint(srv.URL))
			},
		},
		{
			name: "unreachable endpoint",
			client: func(t *testing.T) *Client {
				return NewClient("test-key", WithEndpoint("http://127.0.0.1:1"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := tt.client(t).Generate(context.Background(), "prompt", nil)
			if ok || text != "" {
				t.Errorf("Generate() = %q, %v, want absent", text, ok)
			}
		})
	}
}

func TestConfigured(t *testing.T) {
	if NewClient("").Configured() {
		t.Error("Configured() with empty key = true")
	}
	if !NewClient("k").Configured() {
		t.Error("Configured() with key = false")
	}
	var nilClient *Client
	if nilClient.Configured() {
		t.Error("nil client Configured() = true")
	}
}

func TestExplainUsesCandidatePayload(t *testing.T) {
	srv, captured := chatServer(t, http.StatusOK, "Ace Closer fits here.")
	c := NewClient("test-key", WithEndpoint(srv.URL))

	matchup := &core.MatchupContext{Batter: core.SideLeft, Leverage: core.LeverageHigh}
	top := []core.ScoredReliever{
		{Reliever: &core.Reliever{Name: "Ace Closer", Throws: core.SideRight, ERA: 2.0, WHIP: 0.9, KPer9: 12, BBPer9: 2, VsLeft: 0.25, VsRight: 0.26, DaysRest: 2}, Score: 0.8611},
	}

	text, ok := c.Explain(context.Background(), matchup, top)
	if !ok || text == "" {
		t.Fatalf("Explain() = %q, %v", text, ok)
	}
	user := captured.Messages[1].Content
	for _, want := range []string{`"Ace Closer"`, `"score":0.8611`, `"batter":"L"`, `"leverage":"high"`} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %s: %s", want, user)
		}
	}
}

func TestRecommendationFrom(t *testing.T) {
	available := []*core.Reliever{
		{Name: "Ace Closer"},
		{Name: "Solid Setup"},
	}

	tests := []struct {
		name   string
		advice string
		want   string
	}{
		{"warm up named reliever", "Start warming up Ace Closer for the ninth.", "warm_up_Ace_Closer"},
		{"warming variant", "Get Solid Setup warming in the pen.", "warm_up_Solid_Setup"},
		{"pull the pitcher", "Pull him now, he's lost command.", "consider_pulling_pitcher"},
		{"keep current", "Keep the starter in for one more batter.", "keep_current_pitcher"},
		{"warm up unknown name falls through to keep", "Warm up Somebody Else but keep the starter.", "keep_current_pitcher"},
		{"unrecognized", "The bullpen looks tired tonight.", ""},
		{"empty advice", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendationFrom(tt.advice, available); got != tt.want {
				t.Errorf("RecommendationFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}
