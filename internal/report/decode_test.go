package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"smartfill/internal/domain"
)

const pairedOutput = `{
	"topics": ["Casualties", "Infrastructure"],
	"topic_results": [
		[
			{"body": {"question_id": 3, "question": "Q3?", "answer": "A3"}},
			{"body": {"question_id": "1", "question": "Q1?", "answer": "A1"}},
			{"body": {"question_id": 2, "question": "Q2?", "answer": "A2",
				"follow-up": [
					{"question": {"S": "Any updates?"}, "answer": "Not yet"}
				]}}
		],
		[
			{"body": {"question_id": 1, "question": "Bridges?", "answer": "Two down"}}
		]
	]
}`

func TestDecode_PairsTopicsAndSortsByQuestionID(t *testing.T) {
	rep := Decode(pairedOutput)
	require.Empty(t, rep.Warnings)
	require.Len(t, rep.Topics, 2)

	require.Equal(t, "Casualties", rep.Topics[0].Name)
	require.Equal(t, "Infrastructure", rep.Topics[1].Name)

	var ids []int
	for _, q := range rep.Topics[0].Questions {
		ids = append(ids, q.ID)
	}
	require.Equal(t, []int{1, 2, 3}, ids, "mixed int and string ids sort ascending")

	q2 := rep.Topics[0].Questions[1]
	require.Equal(t, []domain.FollowUp{{Question: "Any updates?", Answer: "Not yet"}}, q2.FollowUps)
}

func TestDecode_LengthMismatchFallsBackToPositionalLabels(t *testing.T) {
	rep := Decode(`{
		"topics": ["Only One"],
		"topic_results": [
			[{"body": {"question_id": 2, "question": "B?", "answer": "b"}},
			 {"body": {"question_id": 1, "question": "A?", "answer": "a"}}],
			[{"body": {"question_id": 1, "question": "C?", "answer": "c"}}]
		]
	}`)
	require.Len(t, rep.Warnings, 1)
	require.Contains(t, rep.Warnings[0], "don't match")
	require.Len(t, rep.Topics, 2)
	require.Equal(t, "Topic 1", rep.Topics[0].Name)
	require.Equal(t, "Topic 2", rep.Topics[1].Name)

	// Question sorting still applies in the fallback path.
	require.Equal(t, 1, rep.Topics[0].Questions[0].ID)
	require.Equal(t, 2, rep.Topics[0].Questions[1].ID)
}

func TestDecode_TopicResultsWithoutTopicsList(t *testing.T) {
	rep := Decode(`{
		"topic_results": [
			[{"body": {"question_id": 1, "question": "A?", "answer": "a"}}]
		]
	}`)
	require.Empty(t, rep.Warnings)
	require.Len(t, rep.Topics, 1)
	require.Equal(t, "Topic 1", rep.Topics[0].Name)
}

func TestDecode_MalformedOutputDegradesToWarning(t *testing.T) {
	rep := Decode(`{"topics": [}`)
	require.Empty(t, rep.Topics)
	require.Len(t, rep.Warnings, 1)
	require.Contains(t, rep.Warnings[0], "could not parse execution output")
}

func TestDecode_EmptyOutputIsEmptyReport(t *testing.T) {
	rep := Decode("")
	require.Empty(t, rep.Topics)
	require.Empty(t, rep.Warnings)
}

func TestDecode_MissingBodySkipped(t *testing.T) {
	rep := Decode(`{
		"topic_results": [
			[{"other": 1}, {"body": {"question_id": 1, "question": "A?", "answer": "a"}}]
		]
	}`)
	require.Len(t, rep.Topics, 1)
	require.Len(t, rep.Topics[0].Questions, 1)
}

func TestDecode_UnparseableQuestionIDDefaultsToZero(t *testing.T) {
	rep := Decode(`{
		"topic_results": [
			[{"body": {"question_id": "n/a", "question": "B?", "answer": "b"}},
			 {"body": {"question_id": 5, "question": "A?", "answer": "a"}},
			 {"body": {"question": "no id", "answer": "c"}}]
		]
	}`)
	qs := rep.Topics[0].Questions
	require.Len(t, qs, 3)
	require.Equal(t, 0, qs[0].ID)
	require.Equal(t, 0, qs[1].ID)
	require.Equal(t, 5, qs[2].ID)
}

func TestDecodeFailure_ParsesErrorAndCause(t *testing.T) {
	f := DecodeFailure(`{"errorType":"States.TaskFailed"}`, `{"stage":"index","attempt":2}`)
	require.Empty(t, f.Warnings)
	require.Equal(t, map[string]any{"errorType": "States.TaskFailed"}, f.Error)
	require.Equal(t, map[string]any{"stage": "index", "attempt": float64(2)}, f.Cause)
}

func TestDecodeFailure_FieldsDefaultIndependently(t *testing.T) {
	f := DecodeFailure("not json", `{"stage":"parse"}`)
	require.Len(t, f.Warnings, 1)
	require.Contains(t, f.Warnings[0], "error details")
	require.Equal(t, map[string]any{}, f.Error)
	require.Equal(t, map[string]any{"stage": "parse"}, f.Cause)
}

func TestDecodeFailure_EmptyFieldsAreEmptyObjects(t *testing.T) {
	f := DecodeFailure("", "")
	require.Empty(t, f.Warnings)
	require.Equal(t, map[string]any{}, f.Error)
	require.Equal(t, map[string]any{}, f.Cause)
}
