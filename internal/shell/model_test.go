package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"smartfill/internal/domain"
	"smartfill/internal/history"
)

type fakeChecker struct {
	exec  domain.Execution
	err   error
	calls int
}

func (f *fakeChecker) Check(_ context.Context, handle domain.ExecutionHandle) (domain.Execution, error) {
	f.calls++
	exec := f.exec
	exec.ARN = handle.ARN
	return exec, f.err
}

func (f *fakeChecker) Interval() time.Duration { return 2 * time.Second }

type fakeHistory struct {
	appended []history.Entry
	updates  map[string]string
}

func (f *fakeHistory) Append(e history.Entry) error {
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeHistory) Latest() (history.Entry, bool, error) {
	if len(f.appended) == 0 {
		return history.Entry{}, false, nil
	}
	return f.appended[len(f.appended)-1], true, nil
}

func (f *fakeHistory) UpdateStatus(arn, status string) error {
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	f.updates[arn] = status
	return nil
}

func launched(m Model) Model {
	next, _ := m.Update(launchedMsg{
		session: domain.Session{ID: "sess-1", StagedKeys: []string{"sess-1/a.pdf"}},
		handle:  domain.ExecutionHandle{ARN: "arn:exec", Status: domain.StatusPending},
	})
	return next.(Model)
}

func TestUpdate_LaunchEnablesAutoCheck(t *testing.T) {
	hist := &fakeHistory{}
	m := NewModel(context.Background(), &fakeChecker{}, hist)

	m = launched(m)
	require.True(t, m.autoCheck)
	require.Equal(t, "arn:exec", m.handle.ARN)
	require.Len(t, hist.appended, 1)
	require.Equal(t, "sess-1", hist.appended[0].SessionID)
}

func TestUpdate_TickPollsWhileNonTerminal(t *testing.T) {
	checker := &fakeChecker{exec: domain.Execution{Status: domain.StatusRunning}}
	m := launched(NewModel(context.Background(), checker, nil))

	_, cmd := m.Update(pollTickMsg{})
	require.NotNil(t, cmd, "a non-terminal tick issues one check")

	msg := cmd()
	checked, ok := msg.(checkedMsg)
	require.True(t, ok)
	require.Equal(t, 1, checker.calls)
	require.Equal(t, domain.StatusRunning, checked.exec.Status)
}

func TestUpdate_TerminalStatusStopsAutoCheck(t *testing.T) {
	hist := &fakeHistory{}
	m := launched(NewModel(context.Background(), &fakeChecker{}, hist))

	next, cmd := m.Update(checkedMsg{exec: domain.Execution{
		ARN:    "arn:exec",
		Status: domain.StatusSucceeded,
		Output: `{"topic_results":[[{"body":{"question_id":1,"question":"Q?","answer":"A"}}]]}`,
	}})
	m = next.(Model)

	require.False(t, m.autoCheck)
	require.True(t, m.quitting)
	require.NotNil(t, cmd)
	require.Equal(t, "SUCCEEDED", hist.updates["arn:exec"])
}

func TestUpdate_TickAfterTerminalIsNoOp(t *testing.T) {
	m := launched(NewModel(context.Background(), &fakeChecker{}, nil))
	next, _ := m.Update(checkedMsg{exec: domain.Execution{ARN: "arn:exec", Status: domain.StatusFailed}})
	m = next.(Model)

	_, cmd := m.Update(pollTickMsg{})
	require.Nil(t, cmd, "terminal state schedules no further polls")
}

func TestUpdate_RepeatedTerminalCheckRendersNothingExtra(t *testing.T) {
	hist := &fakeHistory{}
	m := launched(NewModel(context.Background(), &fakeChecker{}, hist))

	next, _ := m.Update(checkedMsg{exec: domain.Execution{ARN: "arn:exec", Status: domain.StatusFailed}})
	m = next.(Model)

	// A manual re-check still reporting FAILED must not render a second
	// failure block.
	next, cmd := m.Update(checkedMsg{exec: domain.Execution{ARN: "arn:exec", Status: domain.StatusFailed}})
	m = next.(Model)
	require.True(t, m.quitting)
	require.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_CheckErrorDisablesAutoCheck(t *testing.T) {
	m := launched(NewModel(context.Background(), &fakeChecker{}, nil))

	next, _ := m.Update(checkedMsg{err: errors.New("connection reset")})
	m = next.(Model)
	require.False(t, m.autoCheck)
	require.False(t, m.handle.Status.Terminal(), "remote status stays unresolved")
}

func TestUpdate_ManualCheckOnlyWhenAutoCheckOff(t *testing.T) {
	checker := &fakeChecker{exec: domain.Execution{Status: domain.StatusRunning}}
	m := launched(NewModel(context.Background(), checker, nil))

	// Auto-check on: "c" is ignored.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.Nil(t, cmd)
	require.Zero(t, checker.calls)

	// After a failed check, auto-check is off and "c" triggers one poll.
	next, _ := m.Update(checkedMsg{err: errors.New("boom")})
	m = next.(Model)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)
}

func TestUpdate_SubmitFailedQuitsWithError(t *testing.T) {
	m := NewModel(context.Background(), &fakeChecker{}, nil)
	next, _ := m.Update(submitFailedMsg{reason: "no content was successfully uploaded"})
	m = next.(Model)
	require.True(t, m.quitting)
	require.Error(t, m.Err())
}
