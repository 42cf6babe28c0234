package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/example/habitflow/pkg/models"
)

// ChatGPT represents a client for the OpenAI ChatGPT API
type ChatGPT struct {
	apiKey      string
	apiURL      string
	habitModel  string
	reportModel string
	client      *http.Client
}

// New creates a new ChatGPT client
func New() (*ChatGPT, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &ChatGPT{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		habitModel:  "gpt-4o-mini",
		reportModel: "gpt-4",
		client:      &http.Client{},
	}, nil
}

// Message represents a message in the ChatGPT conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the ChatGPT API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the ChatGPT API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateHabits asks the model for a 3-5 habit roadmap for the goal. The
// difficulty hint adjusts the plan relative to the previous week and may be
// empty for a first-time generation.
func (c *ChatGPT) GenerateHabits(goal *models.Goal, difficulty models.Difficulty) ([]models.HabitSuggestion, error) {
	prompt := habitPrompt(goal, difficulty)

	content, err := c.complete(c.habitModel, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	habits, err := ParseHabitList(content)
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// GenerateWeeklyReport asks the model for a short motivational summary of the
// user's week. A blank response falls back to a fixed message.
func (c *ChatGPT) GenerateWeeklyReport(score int, habitTitles []string, goal *models.Goal) (string, error) {
	prompt := weeklyReportPrompt(score, habitTitles, goal)

	content, err := c.complete(c.reportModel, prompt, 0.8)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "No summary available this week.", nil
	}
	return content, nil
}

// ParseHabitList parses the model output as a JSON array of {"title": ...}.
// No validation is done beyond the parse attempt.
func ParseHabitList(content string) ([]models.HabitSuggestion, error) {
	var habits []models.HabitSuggestion
	if err := json.Unmarshal([]byte(content), &habits); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as JSON: %v", err)
	}
	return habits, nil
}

// complete sends a single-turn chat completion and returns the trimmed content.
func (c *ChatGPT) complete(model, prompt string, temperature float64) (string, error) {
	request := ChatRequest{
		Model:       model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
