package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"career-pathways-backend/config"
	"career-pathways-backend/wizard"
)

const DefaultChatEndpoint = "https://api.openai.com/v1/chat/completions"

// MaxLabels is the fixed size of a generated label set.
const MaxLabels = 5

var fallbackInterests = []string{"Problem Solving", "Innovation", "Leadership", "Communication", "Critical Thinking"}
var fallbackSkills = []string{"Problem Solving", "Communication", "Critical Thinking", "Teamwork", "Adaptability"}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model     string                  `json:"model"`
	Messages  []ChatCompletionMessage `json:"messages"`
	MaxTokens int                     `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatCompletionMessage `json:"message"`
	} `json:"choices"`
}

// SuggestionGenerator asks the chat-completions API for short interest or
// skill labels. Every failure mode falls back to a fixed list; callers
// never see an error from Generate.
type SuggestionGenerator struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

func NewSuggestionGenerator(apiKey string) *SuggestionGenerator {
	return &SuggestionGenerator{
		Endpoint: DefaultChatEndpoint,
		APIKey:   apiKey,
		Model:    "gpt-4o-mini",
		Client:   &http.Client{},
	}
}

// SuggestionRequest carries the career-path context for one generation call.
type SuggestionRequest struct {
	Kind      wizard.Kind
	Career    string
	College   string
	Program   string
	Interests []string // context for skill generation only
	Previous  []string
	Selected  []string
}

// Generate returns the already-selected labels plus enough new ones to fill
// the set back to five. With five selected there is nothing to ask for and
// no call is made.
func (g *SuggestionGenerator) Generate(ctx context.Context, req SuggestionRequest) []string {
	n := MaxLabels - len(req.Selected)
	if n <= 0 {
		return append([]string{}, req.Selected...)
	}

	labels, err := g.call(ctx, req, n)
	if err != nil {
		config.Logger.Warn("suggestion generation fell back to defaults",
			zap.String("kind", string(req.Kind)), zap.Error(err))
		labels = fallback(req.Kind)
	}
	if len(labels) > n {
		labels = labels[:n]
	}

	out := append([]string{}, req.Selected...)
	for _, l := range labels {
		if !containsLabel(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func (g *SuggestionGenerator) call(ctx context.Context, req SuggestionRequest, n int) ([]string, error) {
	if g.APIKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	body, err := json.Marshal(ChatCompletionRequest{
		Model: g.Model,
		Messages: []ChatCompletionMessage{
			{Role: "system", Content: "You are a career advising assistant. Respond with a bare JSON array of strings and nothing else."},
			{Role: "user", Content: buildPrompt(req, n)},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned by the API")
	}

	labels, ok := ParseLabelArray(completion.Choices[0].Message.Content)
	if !ok || len(labels) == 0 {
		return nil, fmt.Errorf("unparseable label list: %q", completion.Choices[0].Message.Content)
	}
	return labels, nil
}

func buildPrompt(req SuggestionRequest, n int) string {
	var b strings.Builder
	noun := "interests"
	if req.Kind == wizard.KindSkills {
		noun = "skills"
	}
	fmt.Fprintf(&b, "Career goal: %s.", req.Career)
	if req.College != "" {
		fmt.Fprintf(&b, " College: %s.", req.College)
	}
	if req.Program != "" {
		fmt.Fprintf(&b, " Program: %s.", req.Program)
	}
	if req.Kind == wizard.KindSkills && len(req.Interests) > 0 {
		fmt.Fprintf(&b, " Student interests: %s.", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&b, " Suggest exactly %d %s as short 2-4 word labels.", n, noun)
	if len(req.Previous) > 0 {
		fmt.Fprintf(&b, " Do not repeat any of: %s.", strings.Join(req.Previous, ", "))
	}
	b.WriteString(" Respond with a JSON array of strings only.")
	return b.String()
}

// ParseLabelArray pulls a string array out of LLM output. Models wrap the
// array in prose or code fences often enough that this has to tolerate both:
// take the first '[' through the last ']' when present, otherwise try the
// whole text.
func ParseLabelArray(raw string) ([]string, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	candidate := text
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			candidate = text[start : end+1]
		}
	}

	var labels []string
	if err := json.Unmarshal([]byte(candidate), &labels); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, false
		}
		out = append(out, l)
	}
	return out, true
}

// Fallback returns the fixed default list for a kind, first n entries.
func Fallback(kind wizard.Kind, n int) []string {
	list := fallback(kind)
	if n < len(list) {
		list = list[:n]
	}
	return append([]string{}, list...)
}

func fallback(kind wizard.Kind) []string {
	if kind == wizard.KindSkills {
		return fallbackSkills
	}
	return fallbackInterests
}

func containsLabel(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
