package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-pathways-backend/wizard"
)

func TestParseLabelArray(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
		ok   bool
	}{
		{"bare array", `["Coding","Robotics"]`, []string{"Coding", "Robotics"}, true},
		{"prose around array", `Sure! Here you go: ["Coding", "Robotics"] Hope that helps.`, []string{"Coding", "Robotics"}, true},
		{"fenced json", "```json\n[\"Coding\"]\n```", []string{"Coding"}, true},
		{"whitespace trimmed", `[" Coding ", "Robotics"]`, []string{"Coding", "Robotics"}, true},
		{"empty entry rejected", `["Coding", ""]`, nil, false},
		{"array inside an object still found", `{"labels": ["Coding"]}`, []string{"Coding"}, true},
		{"plain prose", `I cannot help with that.`, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseLabelArray(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func chatServer(t *testing.T, calls *int, reply func(prompt string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req ChatCompletionRequest
		require.NoError(t, json.Unmarshal(body, &req))
		prompt := req.Messages[len(req.Messages)-1].Content

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message ChatCompletionMessage `json:"message"`
		}{Message: ChatCompletionMessage{Role: "assistant", Content: reply(prompt)}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func testGenerator(url string) *SuggestionGenerator {
	g := NewSuggestionGenerator("test-key")
	g.Endpoint = url
	return g
}

func TestGenerateSkipsCallWhenSetIsFull(t *testing.T) {
	calls := 0
	srv := chatServer(t, &calls, func(string) string { return `["X"]` })
	defer srv.Close()

	selected := []string{"A", "B", "C", "D", "E"}
	got := testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
		Kind:     wizard.KindInterests,
		Career:   "Software Engineer",
		Selected: selected,
	})

	assert.Equal(t, selected, got)
	assert.Zero(t, calls, "no external call once everything is selected")
}

func TestGenerateRequestsExactlyTheBudget(t *testing.T) {
	calls := 0
	var prompt string
	srv := chatServer(t, &calls, func(p string) string {
		prompt = p
		return `["New One", "New Two", "New Three", "New Four", "New Five"]`
	})
	defer srv.Close()

	got := testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
		Kind:     wizard.KindSkills,
		Career:   "Software Engineer",
		Previous: []string{"Debugging", "Teamwork"},
		Selected: []string{"Debugging", "Teamwork"},
	})

	assert.Equal(t, 1, calls)
	assert.Contains(t, prompt, "exactly 3 skills")
	assert.Contains(t, prompt, "Do not repeat any of: Debugging, Teamwork.")
	// over-delivery is truncated to the budget
	assert.Equal(t, []string{"Debugging", "Teamwork", "New One", "New Two", "New Three"}, got)
}

func TestGenerateSkillsPromptCarriesInterests(t *testing.T) {
	calls := 0
	var prompt string
	srv := chatServer(t, &calls, func(p string) string {
		prompt = p
		return `["Teamwork"]`
	})
	defer srv.Close()

	testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
		Kind:      wizard.KindSkills,
		Career:    "Marine Biologist",
		College:   "UH Hilo",
		Program:   "BS Marine Science",
		Interests: []string{"Ocean Conservation", "Field Research"},
	})

	require.Equal(t, 1, calls)
	assert.Contains(t, prompt, "Student interests: Ocean Conservation, Field Research.")
	assert.Contains(t, prompt, "College: UH Hilo.")
}

func TestGenerateFallsBackDeterministically(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	for _, tc := range []struct {
		kind     wizard.Kind
		selected []string
		want     []string
	}{
		{wizard.KindInterests, nil, []string{"Problem Solving", "Innovation", "Leadership", "Communication", "Critical Thinking"}},
		{wizard.KindInterests, []string{"Robotics", "Coding"}, []string{"Robotics", "Coding", "Problem Solving", "Innovation", "Leadership"}},
		{wizard.KindSkills, []string{"Welding"}, []string{"Welding", "Problem Solving", "Communication", "Critical Thinking", "Teamwork"}},
	} {
		got := testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
			Kind:     tc.kind,
			Career:   "Engineer",
			Selected: tc.selected,
		})
		assert.Equal(t, tc.want, got)
	}
}

func TestGenerateFallsBackOnUnparseableContent(t *testing.T) {
	calls := 0
	srv := chatServer(t, &calls, func(string) string { return "Sorry, I can't do lists today." })
	defer srv.Close()

	got := testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
		Kind:     wizard.KindInterests,
		Career:   "Engineer",
		Selected: []string{"Robotics"},
	})
	assert.Equal(t, []string{"Robotics", "Problem Solving", "Innovation", "Leadership", "Communication"}, got)
}

func TestGenerateNeverExceedsFiveOrDuplicatesSelection(t *testing.T) {
	calls := 0
	srv := chatServer(t, &calls, func(string) string {
		return `["Robotics", "Coding", "Design", "Testing", "Writing", "Extra"]`
	})
	defer srv.Close()

	got := testGenerator(srv.URL).Generate(context.Background(), SuggestionRequest{
		Kind:     wizard.KindInterests,
		Career:   "Engineer",
		Selected: []string{"Robotics", "Coding"},
	})

	assert.LessOrEqual(t, len(got), MaxLabels)
	seen := map[string]bool{}
	for _, l := range got {
		assert.False(t, seen[l], "duplicate label %q", l)
		seen[l] = true
	}
	assert.Equal(t, []string{"Robotics", "Coding"}, got[:2], "selection leads the result")
}

func TestGenerateWithoutAPIKeyUsesFallback(t *testing.T) {
	g := NewSuggestionGenerator("")
	g.Endpoint = "http://127.0.0.1:0" // never reached
	got := g.Generate(context.Background(), SuggestionRequest{Kind: wizard.KindSkills, Career: "Chef"})
	assert.Equal(t, []string{"Problem Solving", "Communication", "Critical Thinking", "Teamwork", "Adaptability"}, got)
}

func TestBuildPromptOmitsEmptyContext(t *testing.T) {
	p := buildPrompt(SuggestionRequest{Kind: wizard.KindInterests, Career: "Chef"}, 5)
	assert.True(t, strings.HasPrefix(p, "Career goal: Chef."))
	assert.NotContains(t, p, "College:")
	assert.NotContains(t, p, "Do not repeat")
}
