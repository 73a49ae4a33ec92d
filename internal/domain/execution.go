package domain

// Status is the lifecycle state of one pipeline execution as reported by
// Step Functions.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusTimedOut  Status = "TIMED_OUT"
	StatusAborted   Status = "ABORTED"
)

// Terminal reports whether the orchestration service will not transition the
// execution any further.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return true
	}
	return false
}

// ExecutionHandle is an opaque reference to one pipeline run. Only the poller
// updates Status, by re-fetching it from the orchestration service.
type ExecutionHandle struct {
	ARN    string
	Status Status
}

// Execution is the full describe result for a handle. Output, ErrorCode and
// Cause are raw JSON strings exactly as the service returned them; decoding
// is the renderer's job so a malformed payload can degrade to a warning
// instead of failing the status check.
type Execution struct {
	ARN       string
	Status    Status
	Output    string
	ErrorCode string
	Cause     string
}

// Handle returns the handle view of the execution.
func (e Execution) Handle() ExecutionHandle {
	return ExecutionHandle{ARN: e.ARN, Status: e.Status}
}
