package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	topicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	questionStyle = lipgloss.NewStyle().
			Bold(true)

	answerLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	followUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// Render formats a decoded report for the terminal. Warnings come first so
// they are visible even when the topic list is long.
func Render(rep Report) string {
	var b strings.Builder
	for _, w := range rep.Warnings {
		b.WriteString(warnStyle.Render("⚠ "+w) + "\n")
	}
	for _, topic := range rep.Topics {
		b.WriteString(topicStyle.Render(topic.Name) + "\n")
		for _, q := range topic.Questions {
			b.WriteString(questionStyle.Render(fmt.Sprintf("Question %d: %s", q.ID, q.Question)) + "\n")
			b.WriteString(answerLabelStyle.Render("Answer: ") + q.Answer + "\n")
			if len(q.FollowUps) > 0 {
				b.WriteString(followUpStyle.Render("Follow-up Questions:") + "\n")
				for i, fu := range q.FollowUps {
					b.WriteString(followUpStyle.Render(fmt.Sprintf("  %d. %s", i+1, fu.Question)) + "\n")
					b.WriteString(followUpStyle.Render("     Answer: "+fu.Answer) + "\n")
				}
			}
			b.WriteString(separatorStyle.Render("---") + "\n")
		}
	}
	return b.String()
}

// RenderFailure formats the error/cause pair of a failed execution.
func RenderFailure(f Failure) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Processing failed.") + "\n")
	for _, w := range f.Warnings {
		b.WriteString(warnStyle.Render("⚠ "+w) + "\n")
	}
	b.WriteString(errorStyle.Render("Error: ") + compactJSON(f.Error) + "\n")
	b.WriteString(errorStyle.Render("Cause: ") + compactJSON(f.Cause) + "\n")
	return b.String()
}

func compactJSON(v any) string {
	if v == nil {
		return "{}"
	}
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
