package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/habitflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHabitList(t *testing.T) {
	habits, err := ParseHabitList(`[{"title":"Run 20 minutes"},{"title":"Read 10 pages"}]`)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Run 20 minutes", habits[0].Title)
}

func TestParseHabitListBadJSON(t *testing.T) {
	_, err := ParseHabitList("Sure! Here are some habits for you:")
	assert.Error(t, err)
}

func TestHabitPromptIncludesGoalAndDifficulty(t *testing.T) {
	goal := &models.Goal{
		GoalTitle:   "Run a marathon",
		Description: "Finish a full marathon in under five hours",
		Timeline:    "6 months",
		Motivator:   "health",
	}

	prompt := habitPrompt(goal, "")
	assert.Contains(t, prompt, "Run a marathon")
	assert.Contains(t, prompt, `{ "title": "Habit title" }`)
	assert.NotContains(t, prompt, "Last week")

	harder := habitPrompt(goal, models.DifficultyHarder)
	assert.Contains(t, harder, "more ambitious")
	easier := habitPrompt(goal, models.DifficultyEasier)
	assert.Contains(t, easier, "lighter")
}

func TestWeeklyReportPrompt(t *testing.T) {
	goal := &models.Goal{GoalTitle: "Learn Spanish", Description: "B1 by winter", Motivator: "travel"}
	prompt := weeklyReportPrompt(85, []string{"Practice vocab", "Listen to a podcast"}, goal)

	assert.Contains(t, prompt, "85%")
	assert.Contains(t, prompt, "Practice vocab")
	assert.Contains(t, prompt, "Learn Spanish")
}

// fakeAPI serves a canned chat-completion response and records the request.
func fakeAPI(t *testing.T, content string, gotReq *ChatRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateHabits(t *testing.T) {
	var gotReq ChatRequest
	srv := fakeAPI(t, `[{"title":"Stretch for 5 minutes"}]`, &gotReq)
	defer srv.Close()

	c := &ChatGPT{
		apiKey:      "test-key",
		apiURL:      srv.URL,
		habitModel:  "gpt-4o-mini",
		reportModel: "gpt-4",
		client:      srv.Client(),
	}

	habits, err := c.GenerateHabits(&models.Goal{GoalTitle: "Be flexible"}, models.DifficultySame)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Stretch for 5 minutes", habits[0].Title)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "Be flexible")
}

func TestGenerateWeeklyReport(t *testing.T) {
	var gotReq ChatRequest
	srv := fakeAPI(t, "Great week! Keep going.", &gotReq)
	defer srv.Close()

	c := &ChatGPT{
		apiKey:      "test-key",
		apiURL:      srv.URL,
		habitModel:  "gpt-4o-mini",
		reportModel: "gpt-4",
		client:      srv.Client(),
	}

	summary, err := c.GenerateWeeklyReport(90, []string{"Run"}, &models.Goal{GoalTitle: "Marathon"})
	require.NoError(t, err)
	assert.Equal(t, "Great week! Keep going.", summary)
	assert.Equal(t, "gpt-4", gotReq.Model)
}

func TestGenerateWeeklyReportEmptyFallback(t *testing.T) {
	var gotReq ChatRequest
	srv := fakeAPI(t, "", &gotReq)
	defer srv.Close()

	c := &ChatGPT{apiKey: "test-key", apiURL: srv.URL, reportModel: "gpt-4", client: srv.Client()}

	summary, err := c.GenerateWeeklyReport(10, nil, &models.Goal{})
	require.NoError(t, err)
	assert.Equal(t, "No summary available this week.", summary)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := &ChatGPT{apiKey: "test-key", apiURL: srv.URL, habitModel: "gpt-4o-mini", client: srv.Client()}
	_, err := c.GenerateHabits(&models.Goal{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
