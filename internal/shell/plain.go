package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"smartfill/internal/domain"
	"smartfill/internal/history"
)

// RunPlain is the non-interactive submission flow for piped output: the same
// stage → launch → watch cycle as the TUI, printed line by line.
func RunPlain(ctx context.Context, deps Deps, in Input, out io.Writer) error {
	sessionID := deps.NewSessionID()
	fmt.Fprintln(out, "Session:", sessionID)

	keys, itemErrs := deps.Stager.Stage(ctx, sessionID, in.Text, in.Files, func(done, total int, name string) {
		fmt.Fprintf(out, "staged %d/%d: %s\n", done, total, name)
	})
	for _, ie := range itemErrs {
		fmt.Fprintf(out, "warning: skipped %s: %v\n", ie.Name, ie.Err)
	}
	if len(keys) == 0 {
		return errors.New("no content was successfully uploaded")
	}

	handle, err := deps.Launcher.Launch(ctx, sessionID, keys)
	if err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	fmt.Fprintln(out, "Processing pipeline started.")
	recordLaunch(deps.History, sessionID, handle)

	last := handle.Status
	exec, err := deps.Poller.Watch(ctx, handle, func(e domain.Execution) {
		if e.Status != last {
			fmt.Fprintln(out, "Current status:", e.Status)
			last = e.Status
		}
	})
	if err != nil {
		return fmt.Errorf("status check failed, run `smartfill status` to retry: %w", err)
	}

	recordStatus(deps.History, exec)
	fmt.Fprintln(out, RenderOutcome(exec))
	return nil
}

func recordLaunch(hist history.ReadWriter, sessionID string, handle domain.ExecutionHandle) {
	if hist == nil {
		return
	}
	err := hist.Append(history.Entry{
		SessionID:    sessionID,
		ExecutionARN: handle.ARN,
		StartedAt:    time.Now().UTC(),
		Status:       string(handle.Status),
	})
	if err != nil {
		slog.Warn("could not record session history", "err", err)
	}
}

func recordStatus(hist history.ReadWriter, exec domain.Execution) {
	if hist == nil {
		return
	}
	if err := hist.UpdateStatus(exec.ARN, string(exec.Status)); err != nil {
		slog.Warn("could not update session history", "err", err)
	}
}
