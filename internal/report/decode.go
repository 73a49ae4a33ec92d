// Package report decodes and renders the pipeline's final output payload:
// topics, their answered questions, and follow-ups on success, or the
// structured error/cause pair on failure. Decoding never fails hard; a
// malformed payload degrades to warnings so a finished execution can always
// be shown to the user.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"smartfill/internal/domain"
)

// Report is the decoded success payload plus any warnings produced while
// decoding it.
type Report struct {
	Topics   []domain.TopicResult
	Warnings []string
}

// Failure is the decoded error/cause pair of a failed execution.
type Failure struct {
	Error    any
	Cause    any
	Warnings []string
}

type payload struct {
	Topics       []string       `json:"topics"`
	TopicResults [][]resultItem `json:"topic_results"`
}

type resultItem struct {
	Body *itemBody `json:"body"`
}

type itemBody struct {
	QuestionID json.RawMessage `json:"question_id"`
	Question   string          `json:"question"`
	Answer     string          `json:"answer"`
	FollowUp   []followUpItem  `json:"follow-up"`
}

type followUpItem struct {
	Question wrappedString `json:"question"`
	Answer   string        `json:"answer"`
}

// wrappedString reads the upstream's {"S": "..."} wrapper around follow-up
// question text. The wrapper looks like a leaked raw-storage artifact of the
// payload producer; it is read as-is rather than guessed around.
type wrappedString struct {
	S string `json:"S"`
}

// Decode parses the output payload of a SUCCEEDED execution. It always
// returns a usable Report; shape problems surface as warnings.
func Decode(output string) Report {
	output = strings.TrimSpace(output)
	if output == "" {
		output = "{}"
	}

	var p payload
	if err := json.Unmarshal([]byte(output), &p); err != nil {
		return Report{Warnings: []string{fmt.Sprintf("could not parse execution output: %v", err)}}
	}
	if p.TopicResults == nil {
		return Report{}
	}

	var rep Report
	named := p.Topics != nil
	if named && len(p.Topics) != len(p.TopicResults) {
		rep.Warnings = append(rep.Warnings,
			"topic names and data lengths don't match; displaying data without topic names")
		named = false
	}

	for i, results := range p.TopicResults {
		name := fmt.Sprintf("Topic %d", i+1)
		if named {
			name = p.Topics[i]
		}
		rep.Topics = append(rep.Topics, domain.TopicResult{
			Name:      name,
			Questions: decodeQuestions(results),
		})
	}
	return rep
}

func decodeQuestions(items []resultItem) []domain.QuestionResult {
	var questions []domain.QuestionResult
	for _, item := range items {
		if item.Body == nil {
			continue
		}
		b := item.Body
		q := domain.QuestionResult{
			ID:       parseQuestionID(b.QuestionID),
			Question: b.Question,
			Answer:   b.Answer,
		}
		for _, fu := range b.FollowUp {
			q.FollowUps = append(q.FollowUps, domain.FollowUp{
				Question: fu.Question.S,
				Answer:   fu.Answer,
			})
		}
		questions = append(questions, q)
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].ID < questions[j].ID
	})
	return questions
}

// parseQuestionID reads the id as an integer whether the producer sent a
// number or a numeric string; anything else counts as 0.
func parseQuestionID(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

// DecodeFailure parses the error and cause payloads of a FAILED execution.
// Each field is decoded independently; a field that fails to parse defaults
// to an empty object and adds a warning instead of failing the render.
func DecodeFailure(errorJSON, causeJSON string) Failure {
	var f Failure
	f.Error = decodeLoose(errorJSON, "error", &f.Warnings)
	f.Cause = decodeLoose(causeJSON, "cause", &f.Warnings)
	return f
}

func decodeLoose(raw, field string, warnings *[]string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		*warnings = append(*warnings, fmt.Sprintf("could not parse %s details: %v", field, err))
		return map[string]any{}
	}
	return v
}
