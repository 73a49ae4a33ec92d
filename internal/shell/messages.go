package shell

import (
	"smartfill/internal/domain"
)

// ---------- messages sent from the submit goroutine via program.Send() ----------

type sessionStartedMsg struct{ sessionID string }

type itemStagedMsg struct {
	done, total int
	name        string
}

type itemFailedMsg struct {
	name string
	err  error
}

type submitFailedMsg struct{ reason string }

type launchedMsg struct {
	session domain.Session
	handle  domain.ExecutionHandle
}

// ---------- messages produced by the model's own commands ----------

// pollTickMsg fires after the fixed polling delay while auto-check is on.
type pollTickMsg struct{}

type checkedMsg struct {
	exec domain.Execution
	err  error
}
