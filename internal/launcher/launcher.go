// Package launcher starts the document-processing pipeline for a staged
// session.
package launcher

import (
	"context"
	"encoding/json"
	"errors"

	"smartfill/internal/domain"
	"smartfill/internal/fault"
	"smartfill/internal/integrations/pipeline"
)

// executionInput is the JSON payload the state machine expects.
// last_session_id is always null here; the pipeline fills it in when it
// chains sessions internally.
type executionInput struct {
	SessionID     string  `json:"session_id"`
	LastSessionID *string `json:"last_session_id"`
}

// Launcher submits pipeline execution requests.
type Launcher struct {
	pipe pipeline.Starter
}

// New creates a Launcher backed by the given pipeline.
func New(pipe pipeline.Starter) (*Launcher, error) {
	if pipe == nil {
		return nil, errors.New("launcher: pipeline must not be nil")
	}
	return &Launcher{pipe: pipe}, nil
}

// Launch starts one execution named "Execution-{sessionID}". The name derives
// from the session so a duplicate launch for the same session is rejected by
// the service instead of running twice. On failure no handle exists and no
// state changes.
func (l *Launcher) Launch(ctx context.Context, sessionID string, stagedKeys []string) (domain.ExecutionHandle, error) {
	if sessionID == "" {
		return domain.ExecutionHandle{}, fault.New(fault.KindMalformed, "missing_session_id", nil)
	}
	if len(stagedKeys) == 0 {
		return domain.ExecutionHandle{}, fault.New(fault.KindMalformed, "no_staged_content", nil)
	}

	input, err := json.Marshal(executionInput{SessionID: sessionID})
	if err != nil {
		return domain.ExecutionHandle{}, fault.New(fault.KindMalformed, "encode_input", err)
	}

	handle, err := l.pipe.Start(ctx, "Execution-"+sessionID, string(input))
	if err != nil {
		return domain.ExecutionHandle{}, fault.New(fault.KindServiceRejected, "start_execution", err)
	}
	return handle, nil
}
