// Package quizgen generates multiple-choice quizzes from video transcripts
// through the Gemini generateContent endpoint. Results are memoized on disk
// per video: a generation is attempted at most until it first succeeds, and
// failures are surfaced to the caller without retry.
package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/burkiv/dersb/content"
)

// Sentinel errors for quiz generation.
var (
	// ErrMissingAPIKey indicates no Gemini API key was configured.
	ErrMissingAPIKey = errors.New("quizgen: api key required")
	// ErrInvalidResponse indicates the model reply held no usable quiz.
	ErrInvalidResponse = errors.New("quizgen: invalid model response")
)

const (
	defaultModel         = "gemini-1.5-flash"
	defaultEndpoint      = "https://generativelanguage.googleapis.com/v1beta"
	defaultTranscriptURL = "https://yt-transcript-api.vercel.app/api/transcript"
	defaultCacheDir      = ".cache/quizzes"

	// maxContextChars bounds the transcript excerpt fed to the model.
	maxContextChars = 8000
)

// HTTPError carries a non-2xx status from a collaborator service.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

// Generator produces quizzes for videos. Zero-value fields fall back to
// production defaults; tests override the endpoints and cache directory.
type Generator struct {
	// APIKey authenticates against the Gemini endpoint. Required.
	APIKey string
	// Model names the Gemini model (default gemini-1.5-flash).
	Model string
	// Endpoint is the Gemini API base URL.
	Endpoint string
	// TranscriptURL is the transcript proxy service URL.
	TranscriptURL string
	// CacheDir holds memoized quizzes, one JSON file per video ID.
	CacheDir string
	// TranscriptRetries bounds retries on rate-limited transcript fetches.
	TranscriptRetries int
	// Client is the HTTP client for both services.
	Client *http.Client
}

// New creates a generator with production defaults.
func New(apiKey string) *Generator {
	return &Generator{
		APIKey:            apiKey,
		Model:             defaultModel,
		Endpoint:          defaultEndpoint,
		TranscriptURL:     defaultTranscriptURL,
		CacheDir:          defaultCacheDir,
		TranscriptRetries: 3,
		Client:            &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateQuiz returns a quiz for the video, serving a previously generated
// quiz from the cache when available. When the transcript cannot be fetched
// the topic title and keywords stand in as generation context.
func (g *Generator) GenerateQuiz(ctx context.Context, videoID, topicTitle string, keywords []string) (*content.Quiz, error) {
	if g.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if quiz, err := g.readCache(videoID); err == nil {
		return quiz, nil
	}

	genContext, err := g.fetchTranscript(ctx, videoID)
	if err != nil {
		// Keyword fallback keeps generation usable for videos without
		// retrievable transcripts.
		genContext = fmt.Sprintf("Konu: %s. Anahtar kelimeler: %s", topicTitle, strings.Join(keywords, ", "))
	}
	genContext = truncateContext(genContext, maxContextChars)

	quiz, err := g.generate(ctx, videoID, topicTitle, genContext)
	if err != nil {
		return nil, err
	}

	// The quiz is already in hand; a failed cache write only costs the
	// next call a regeneration.
	if err := g.writeCache(videoID, quiz); err != nil {
		log.Printf("quizgen: could not cache quiz for %s: %v", videoID, err)
	}
	return quiz, nil
}

// truncateContext caps the generation context at max bytes without
// splitting a multi-byte rune, which Turkish transcripts are full of.
func truncateContext(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func (g *Generator) cachePath(videoID string) string {
	return filepath.Join(g.CacheDir, videoID+".json")
}

func (g *Generator) readCache(videoID string) (*content.Quiz, error) {
	data, err := os.ReadFile(g.cachePath(videoID))
	if err != nil {
		return nil, err
	}
	var quiz content.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (g *Generator) writeCache(videoID string, quiz *content.Quiz) error {
	if err := os.MkdirAll(g.CacheDir, 0755); err != nil {
		return err
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return os.WriteFile(g.cachePath(videoID), data, 0644)
}

// fetchTranscript pulls the video transcript from the proxy service,
// backing off linearly on rate limiting.
func (g *Generator) fetchTranscript(ctx context.Context, videoID string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < g.TranscriptRetries; attempt++ {
		transcript, err := g.fetchTranscriptOnce(ctx, videoID)
		if err == nil {
			return transcript, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second * time.Duration(attempt+1)):
			}
			continue
		}
		return "", err
	}
	return "", fmt.Errorf("exceeded max retries: %w", lastErr)
}

func (g *Generator) fetchTranscriptOnce(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.TranscriptURL, nil)
	if err != nil {
		return "", err
	}
	q := req.URL.Query()
	q.Add("videoId", videoID)
	req.URL.RawQuery = q.Encode()

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("transcript fetch: bad status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The service replies either with timed segments or a single field.
	var segments []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &segments); err == nil {
		parts := make([]string, len(segments))
		for i, s := range segments {
			parts[i] = s.Text
		}
		return strings.Join(parts, " "), nil
	}

	var single struct {
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(body, &single); err != nil {
		return "", fmt.Errorf("parse transcript response: %w", err)
	}
	return single.Transcript, nil
}

// Gemini generateContent request/response shapes, reduced to the fields used.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Generator) generate(ctx context.Context, videoID, topicTitle, genContext string) (*content.Quiz, error) {
	prompt := buildPrompt(videoID, topicTitle, genContext)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.Endpoint, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("generate quiz: bad status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrInvalidResponse
	}

	return parseQuizReply(genResp.Candidates[0].Content.Parts[0].Text)
}

// parseQuizReply extracts the JSON object from a model reply, which may be
// wrapped in prose or code fences, and validates the resulting quiz.
func parseQuizReply(text string) (*content.Quiz, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrInvalidResponse)
	}

	var quiz content.Quiz
	if err := json.Unmarshal([]byte(text[start:end+1]), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidResponse)
	}
	return &quiz, nil
}

func buildPrompt(videoID, topicTitle, genContext string) string {
	return fmt.Sprintf(`Sen bir KPSS sınav hazırlık uzmanısın. Aşağıdaki ders içeriğine dayanarak 5 adet çoktan seçmeli soru hazırla.

Konu: %s
İçerik: %s

Kurallar:
1. Sorular Türkçe olmalı
2. Her sorunun 4 seçeneği olmalı (A, B, C, D)
3. Sorular KPSS sınavı formatında, net ve anlaşılır olmalı
4. Açıklama kısmında doğru cevabın neden doğru olduğunu kısaca açıkla

Yanıtı SADECE aşağıdaki JSON formatında ver, başka hiçbir şey yazma:
{
  "id": "ai-quiz-%s",
  "title": "%s - AI Test",
  "questions": [
    {
      "question": "Soru metni?",
      "options": ["A şıkkı", "B şıkkı", "C şıkkı", "D şıkkı"],
      "correctIndex": 0,
      "explanation": "Doğru cevabın açıklaması"
    }
  ]
}
`, topicTitle, genContext, videoID, topicTitle)
}
