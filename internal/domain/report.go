package domain

// TopicResult groups the answered questions for one topic of the report.
type TopicResult struct {
	Name      string
	Questions []QuestionResult
}

// QuestionResult is one answered question. Questions within a topic are
// displayed sorted ascending by ID regardless of arrival order.
type QuestionResult struct {
	ID        int
	Question  string
	Answer    string
	FollowUps []FollowUp
}

// FollowUp is a secondary question/answer pair nested under a primary
// question's result.
type FollowUp struct {
	Question string
	Answer   string
}
