package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

const validReply = `Tabii, işte test:
{
  "id": "ai-quiz-v1",
  "title": "Osmanlı Devleti Tarihi - AI Test",
  "questions": [
    {
      "question": "Osmanlı Devleti'nin kurucusu kimdir?",
      "options": ["Ertuğrul Gazi", "Osman Bey", "Orhan Bey", "I. Murad"],
      "correctIndex": 1,
      "explanation": "Osmanlı Devleti 1299'da Osman Bey tarafından kuruldu."
    }
  ]
}`

func geminiReply(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func newTestGenerator(t *testing.T, transcript, gemini http.HandlerFunc) *Generator {
	t.Helper()

	transcriptSrv := httptest.NewServer(transcript)
	t.Cleanup(transcriptSrv.Close)
	geminiSrv := httptest.NewServer(gemini)
	t.Cleanup(geminiSrv.Close)

	g := New("test-key")
	g.TranscriptURL = transcriptSrv.URL
	g.Endpoint = geminiSrv.URL
	g.CacheDir = filepath.Join(t.TempDir(), "quizzes")
	g.TranscriptRetries = 1
	return g
}

func TestGenerateQuiz(t *testing.T) {
	transcript := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("videoId"); got != "v1" {
			t.Errorf("transcript videoId = %q, want v1", got)
		}
		fmt.Fprint(w, `[{"text":"Osmanlı Devleti"},{"text":"1299 yılında kuruldu"}]`)
	}
	gemini := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("gemini key = %q, want test-key", got)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, geminiReply(validReply))
	}

	g := newTestGenerator(t, transcript, gemini)
	quiz, err := g.GenerateQuiz(context.Background(), "v1", "Osmanlı Devleti Tarihi", nil)
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}

	if quiz.ID != "ai-quiz-v1" {
		t.Errorf("quiz.ID = %q", quiz.ID)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("len(Questions) = %d, want 1", len(quiz.Questions))
	}
	if quiz.Questions[0].CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", quiz.Questions[0].CorrectIndex)
	}
}

func TestGenerateQuizMemoized(t *testing.T) {
	geminiCalls := 0
	transcript := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"içerik"}]`)
	}
	gemini := func(w http.ResponseWriter, r *http.Request) {
		geminiCalls++
		fmt.Fprint(w, geminiReply(validReply))
	}

	g := newTestGenerator(t, transcript, gemini)
	ctx := context.Background()

	if _, err := g.GenerateQuiz(ctx, "v1", "Konu", nil); err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	quiz, err := g.GenerateQuiz(ctx, "v1", "Konu", nil)
	if err != nil {
		t.Fatalf("GenerateQuiz() cached error = %v", err)
	}

	if geminiCalls != 1 {
		t.Errorf("gemini calls = %d, want 1 (second call must hit the cache)", geminiCalls)
	}
	if quiz.ID != "ai-quiz-v1" {
		t.Errorf("cached quiz.ID = %q", quiz.ID)
	}
}

func TestGenerateQuizKeywordFallback(t *testing.T) {
	var prompt string
	transcript := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no transcript", http.StatusNotFound)
	}
	gemini := func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		fmt.Fprint(w, geminiReply(validReply))
	}

	g := newTestGenerator(t, transcript, gemini)
	if _, err := g.GenerateQuiz(context.Background(), "v1", "Osmanlı", []string{"kuruluş", "1299"}); err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}

	want := "Anahtar kelimeler: kuruluş, 1299"
	if !strings.Contains(prompt, want) {
		t.Errorf("prompt missing keyword fallback %q", want)
	}
}

func TestGenerateQuizErrorsNotCached(t *testing.T) {
	geminiCalls := 0
	transcript := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"içerik"}]`)
	}
	gemini := func(w http.ResponseWriter, r *http.Request) {
		geminiCalls++
		if geminiCalls == 1 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, geminiReply(validReply))
	}

	g := newTestGenerator(t, transcript, gemini)
	ctx := context.Background()

	if _, err := g.GenerateQuiz(ctx, "v1", "Konu", nil); err == nil {
		t.Fatal("GenerateQuiz() expected error on 500, got nil")
	}
	if _, err := g.GenerateQuiz(ctx, "v1", "Konu", nil); err != nil {
		t.Fatalf("GenerateQuiz() retry after failure error = %v", err)
	}
	if geminiCalls != 2 {
		t.Errorf("gemini calls = %d, want 2 (failures must not be memoized)", geminiCalls)
	}
}

func TestGenerateQuizInvalidReply(t *testing.T) {
	transcript := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"içerik"}]`)
	}

	tests := []struct {
		name string
		body string
	}{
		{"no JSON in reply", geminiReply("üzgünüm, soru üretemedim")},
		{"empty questions", geminiReply(`{"id":"ai-quiz-v1","title":"Boş","questions":[]}`)},
		{"no candidates", `{"candidates":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}
			g := newTestGenerator(t, transcript, gemini)
			_, err := g.GenerateQuiz(context.Background(), "v1", "Konu", nil)
			if !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("GenerateQuiz() error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestGenerateQuizSurvivesCacheWriteFailure(t *testing.T) {
	transcript := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"text":"içerik"}]`)
	}
	gemini := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(validReply))
	}

	g := newTestGenerator(t, transcript, gemini)
	// A regular file where the cache directory should be makes every
	// cache write fail.
	blocker := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	g.CacheDir = blocker

	quiz, err := g.GenerateQuiz(context.Background(), "v1", "Konu", nil)
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v, want quiz despite cache failure", err)
	}
	if quiz.ID != "ai-quiz-v1" {
		t.Errorf("quiz.ID = %q", quiz.ID)
	}
}

func TestTruncateContext(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"shorter than max", "kısa", 100, "kısa"},
		{"cut on ascii boundary", "abcdef", 3, "abc"},
		{"cut inside two-byte rune", "aşağı", 2, "a"},
		{"cut after two-byte rune", "aşağı", 3, "aş"},
		{"exactly max", "abc", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateContext(tt.s, tt.max)
			if got != tt.want {
				t.Errorf("truncateContext(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateContext(%q, %d) = %q is not valid UTF-8", tt.s, tt.max, got)
			}
		})
	}
}

func TestGenerateQuizRequiresAPIKey(t *testing.T) {
	g := New("")
	if _, err := g.GenerateQuiz(context.Background(), "v1", "Konu", nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("GenerateQuiz() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestParseQuizReply(t *testing.T) {
	quiz, err := parseQuizReply(validReply)
	if err != nil {
		t.Fatalf("parseQuizReply() error = %v", err)
	}
	if quiz.Title != "Osmanlı Devleti Tarihi - AI Test" {
		t.Errorf("Title = %q", quiz.Title)
	}

	if _, err := parseQuizReply("no json here"); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("parseQuizReply() error = %v, want ErrInvalidResponse", err)
	}
}

