package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-pathways-backend/models/catalog"
)

const chatHistoryLimit = 12

// ChatService backs the advising assistant. Before each completion call it
// runs a keyword lookup over the catalog and feeds the hits into the prompt
// so the model can answer about concrete majors, campuses and courses.
type ChatService struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client

	catalog *CatalogService
	history *TTLCache[[]ChatCompletionMessage]
}

func NewChatService(apiKey string, catalogSvc *CatalogService) *ChatService {
	return &ChatService{
		Endpoint: DefaultChatEndpoint,
		APIKey:   apiKey,
		Model:    "gpt-4o-mini",
		Client:   &http.Client{},
		catalog:  catalogSvc,
		history:  NewTTLCache[[]ChatCompletionMessage](30 * time.Minute),
	}
}

// Ask answers one user message within a conversation.
func (s *ChatService) Ask(ctx context.Context, conversationID, message string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	messages := []ChatCompletionMessage{{
		Role: "system",
		Content: "You are a student career-pathway advisor for a university system. " +
			"Be concise and concrete. Use the catalog context when it is provided.",
	}}
	if toolContext := s.lookupContext(message); toolContext != "" {
		messages = append(messages, ChatCompletionMessage{Role: "system", Content: toolContext})
	}

	past, _ := s.history.Get(conversationID)
	messages = append(messages, past...)
	userMsg := ChatCompletionMessage{Role: "user", Content: message}
	messages = append(messages, userMsg)

	reply, err := s.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	past = append(past, userMsg, ChatCompletionMessage{Role: "assistant", Content: reply})
	if len(past) > chatHistoryLimit {
		past = past[len(past)-chatHistoryLimit:]
	}
	s.history.Set(conversationID, past)
	return reply, nil
}

// lookupContext is the keyword tool dispatch: it scores the message against
// the catalog and returns a context block for any hits.
func (s *ChatService) lookupContext(message string) string {
	normalized := Normalize(message)
	var b strings.Builder

	if strings.Contains(normalized, "major") || strings.Contains(normalized, "program") ||
		strings.Contains(normalized, "degree") || strings.Contains(normalized, "pathway") {
		if pathways, err := s.catalog.Pathways(); err == nil {
			if hits := matchPathways(pathways, normalized); len(hits) > 0 {
				b.WriteString("Matching programs:\n")
				for _, p := range hits {
					fmt.Fprintf(&b, "- %s (%s), %s credits\n", p.ProgramName, p.Institution, p.TotalCredits)
				}
			}
		}
	}

	if strings.Contains(normalized, "campus") || strings.Contains(normalized, "college") {
		if campuses, err := s.catalog.Campuses(); err == nil && len(campuses) > 0 {
			b.WriteString("Campuses:\n")
			for _, c := range campuses {
				fmt.Fprintf(&b, "- %s\n", c.Name)
			}
		}
	}

	if strings.Contains(normalized, "course") || strings.Contains(normalized, "class") {
		if campuses, err := s.catalog.Campuses(); err == nil {
			for _, c := range campuses {
				if strings.Contains(normalized, Normalize(c.Name)) {
					if courses, err := s.catalog.CoursesByCampus(c.Name); err == nil && len(courses) > 0 {
						fmt.Fprintf(&b, "Courses at %s:\n", c.Name)
						for i, course := range courses {
							if i >= 10 {
								break
							}
							fmt.Fprintf(&b, "- %s %s (%d credits)\n", course.Code, course.Title, course.Credits)
						}
					}
					break
				}
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// matchPathways scores each pathway by how many message words hit its name
// or institution and returns the best few.
func matchPathways(pathways []catalog.Pathway, normalizedMessage string) []catalog.Pathway {
	words := strings.Fields(normalizedMessage)
	type scored struct {
		p     catalog.Pathway
		score int
	}
	var hits []scored
	for _, p := range pathways {
		name := Normalize(p.ProgramName)
		inst := Normalize(p.Institution)
		score := 0
		for _, w := range words {
			if len(w) < 4 {
				continue
			}
			if strings.Contains(name, w) || strings.Contains(inst, w) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{p, score})
		}
	}
	best := []catalog.Pathway{}
	for len(best) < 5 && len(hits) > 0 {
		top := 0
		for i, h := range hits {
			if h.score > hits[top].score {
				top = i
			}
		}
		best = append(best, hits[top].p)
		hits = append(hits[:top], hits[top+1:]...)
	}
	return best
}

func (s *ChatService) complete(ctx context.Context, messages []ChatCompletionMessage) (string, error) {
	body, err := json.Marshal(ChatCompletionRequest{
		Model:     s.Model,
		Messages:  messages,
		MaxTokens: 600,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode API response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no reply returned by the API")
	}
	return completion.Choices[0].Message.Content, nil
}
