package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Signup(context.Context) error { return f.record("signup") }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) Me(context.Context) error                     { return f.record("me") }
func (f *fakeExec) Avatar(_ context.Context, path string) error  { return f.record("avatar " + path) }
func (f *fakeExec) Jobs(context.Context) error                   { return f.record("jobs") }
func (f *fakeExec) Job(_ context.Context, id string) error       { return f.record("job " + id) }
func (f *fakeExec) AddJob(context.Context) error                 { return f.record("addjob") }
func (f *fakeExec) DeleteJob(_ context.Context, id string) error { return f.record("deletejob " + id) }

func runLines(exec execIface, lines ...string) string {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "" }, reader, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}

	out := runLines(exec,
		"help",
		"login",
		"help",
		"jobs",
		"job abc",
		"addjob",
		"deletejob abc",
		"me",
		"avatar me.png",
		"logout",
		"",
		"foobar",
		"exit",
		"jobs",
	)

	assert.Equal(t, []string{"login", "jobs", "job abc", "addjob", "deletejob abc", "me", "avatar me.png", "logout"}, exec.calls)
	assert.Contains(t, out, helpText(false))
	assert.Contains(t, out, helpText(true))
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageErrors(t *testing.T) {
	exec := &fakeExec{}

	out := runLines(exec, "job", "deletejob a b", "quit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "usage: job <id>")
	assert.Contains(t, out, "usage: deletejob <id>")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	exec := &fakeExec{err: errors.New("boom")}

	out := runLines(exec, "jobs")

	assert.Equal(t, []string{"jobs"}, exec.calls)
	assert.Contains(t, out, "Error: boom")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{}

	runLines(exec, "signup")

	assert.Equal(t, []string{"signup"}, exec.calls)
}
