package router

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantIntent  Intent
		wantSubject string
	}{
		{
			name:       "plain chat",
			message:    "Tell me a joke about penguins",
			wantIntent: IntentChat,
		},
		{
			name:       "question without keywords",
			message:    "What is machine learning?",
			wantIntent: IntentChat,
		},
		{
			name:       "time question",
			message:    "What is the time?",
			wantIntent: IntentTime,
		},
		{
			name:        "time in city",
			message:     "What's the time in Tokyo?",
			wantIntent:  IntentTime,
			wantSubject: "Tokyo",
		},
		{
			name:       "date question",
			message:    "what's today's date",
			wantIntent: IntentTime,
		},
		{
			name:        "weather in city",
			message:     "What's the weather in Paris?",
			wantIntent:  IntentWeather,
			wantSubject: "Paris",
		},
		{
			name:        "forecast phrasing",
			message:     "Show me the forecast for London",
			wantIntent:  IntentWeather,
			wantSubject: "London",
		},
		{
			name:       "weather without city",
			message:    "How is the weather",
			wantIntent: IntentWeather,
		},
		{
			name:       "plain news",
			message:    "Show me the latest news",
			wantIntent: IntentNews,
		},
		{
			name:        "news about topic",
			message:     "latest news about climate change",
			wantIntent:  IntentNews,
			wantSubject: "climate change",
		},
		{
			name:       "empty message",
			message:    "   ",
			wantIntent: IntentChat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.message)

			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.wantSubject)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	base := "You are a helpful assistant."

	t.Run("no blocks returns base prompt", func(t *testing.T) {
		if got := BuildSystemPrompt(base, nil); got != base {
			t.Errorf("got %q, want base prompt unchanged", got)
		}
	})

	t.Run("blocks are appended with labels", func(t *testing.T) {
		got := BuildSystemPrompt(base, []ContextBlock{
			{Label: "Weather", Content: "Sunny, 20°C"},
		})
		if !strings.HasPrefix(got, base) {
			t.Errorf("prompt should start with base, got %q", got)
		}
		if !strings.Contains(got, "[Weather]") || !strings.Contains(got, "Sunny, 20°C") {
			t.Errorf("prompt missing context block: %q", got)
		}
	})

	t.Run("empty blocks are skipped", func(t *testing.T) {
		got := BuildSystemPrompt(base, []ContextBlock{{Label: "News", Content: "   "}})
		if strings.Contains(got, "[News]") {
			t.Errorf("empty block should be skipped: %q", got)
		}
	})
}
