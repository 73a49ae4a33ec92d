package domain

// Session is one submission cycle. It is created when the user submits
// content and is never mutated afterwards; a new submission supersedes it
// with a fresh Session rather than editing this one.
type Session struct {
	ID         string
	StagedKeys []string
}
