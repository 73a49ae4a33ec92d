package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"smartfill/internal/domain"
)

func TestRender_QuestionsAndFollowUps(t *testing.T) {
	out := Render(Report{Topics: []domain.TopicResult{{
		Name: "Casualties",
		Questions: []domain.QuestionResult{{
			ID:       1,
			Question: "How many injured?",
			Answer:   "Twelve",
			FollowUps: []domain.FollowUp{
				{Question: "Any critical?", Answer: "Two"},
			},
		}},
	}}})

	require.Contains(t, out, "Casualties")
	require.Contains(t, out, "Question 1: How many injured?")
	require.Contains(t, out, "Twelve")
	require.Contains(t, out, "1. Any critical?")
	require.Contains(t, out, "Two")
}

func TestRender_WarningsComeFirst(t *testing.T) {
	out := Render(Report{
		Warnings: []string{"lengths don't match"},
		Topics:   []domain.TopicResult{{Name: "Topic 1"}},
	})
	require.Less(t, strings.Index(out, "lengths don't match"), strings.Index(out, "Topic 1"))
}

func TestRenderFailure_ShowsErrorAndCause(t *testing.T) {
	out := RenderFailure(DecodeFailure(`{"errorType":"States.Timeout"}`, `{"stage":"embed"}`))
	require.Contains(t, out, "Processing failed.")
	require.Contains(t, out, `"errorType":"States.Timeout"`)
	require.Contains(t, out, `"stage":"embed"`)
}

func TestRenderFailure_WarningOnUnparseableDetails(t *testing.T) {
	out := RenderFailure(DecodeFailure("garbage", "also garbage"))
	require.Contains(t, out, "could not parse error details")
	require.Contains(t, out, "could not parse cause details")
	require.Contains(t, out, "{}")
}
