package ai

import (
	"fmt"
	"strings"

	"github.com/example/habitflow/pkg/models"
)

func habitPrompt(goal *models.Goal, difficulty models.Difficulty) string {
	var b strings.Builder

	b.WriteString("I want to achieve the following goal:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", goal.GoalTitle)
	fmt.Fprintf(&b, "Description: %s\n", goal.Description)
	fmt.Fprintf(&b, "Timeline: %s\n", goal.Timeline)
	fmt.Fprintf(&b, "Motivator: %s\n", goal.Motivator)
	fmt.Fprintf(&b, "Message to future self: %s\n", goal.FutureMessage)

	switch difficulty {
	case models.DifficultyHarder:
		b.WriteString("\nLast week went very well, so make the habits slightly more ambitious than a beginner plan.\n")
	case models.DifficultyEasier:
		b.WriteString("\nLast week was hard, so make the habits slightly lighter and easier to keep up.\n")
	}

	b.WriteString(`
Please create a roadmap of 3-5 daily habits for the first week that will help me work toward this goal.

Respond in this exact format:

[
  { "title": "Habit title" }
]
`)
	return b.String()
}

func weeklyReportPrompt(score int, habitTitles []string, goal *models.Goal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I'm working toward this goal: %s (%s).\n", goal.GoalTitle, goal.Description)
	fmt.Fprintf(&b, "This week I completed %d%% of my daily habits:\n", score)
	for _, title := range habitTitles {
		fmt.Fprintf(&b, "- %s\n", title)
	}
	fmt.Fprintf(&b, "My motivator: %s\n", goal.Motivator)
	b.WriteString(`
Write a short, warm weekly progress summary (3-4 sentences) addressed to me.
Mention how the week went given the completion percentage, and end with one
concrete encouragement for next week. Return only the summary text.
`)
	return b.String()
}
