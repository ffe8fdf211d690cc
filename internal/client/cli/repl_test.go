package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// stubExec records which commands the dispatcher invoked.
type stubExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) WhoAmI(ctx context.Context) error   { return s.record("whoami") }
func (s *stubExec) List(ctx context.Context) error     { return s.record("list") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestDispatch_Commands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"register", "register"},
		{"login", "login"},
		{"whoami", "whoami"},
		{"list", "list"},
		{"logout", "logout"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			captureOutput(t)
			s := &stubExec{}
			done := dispatch(context.Background(), s, tt.line)
			if done {
				t.Fatalf("dispatch(%q) = true, want false", tt.line)
			}
			if len(s.calls) != 1 || s.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", s.calls, tt.want)
			}
		})
	}
}

func TestDispatch_Exit(t *testing.T) {
	captureOutput(t)
	s := &stubExec{}
	for _, line := range []string{"exit", "quit"} {
		if done := dispatch(context.Background(), s, line); !done {
			t.Errorf("dispatch(%q) = false, want true", line)
		}
	}
	if len(s.calls) != 0 {
		t.Errorf("exit must not invoke commands, got %v", s.calls)
	}
}

func TestDispatch_EmptyLine(t *testing.T) {
	lines := captureOutput(t)
	s := &stubExec{}
	if done := dispatch(context.Background(), s, "   "); done {
		t.Fatal("empty line must not exit the loop")
	}
	if len(*lines) != 0 {
		t.Errorf("empty line must produce no output, got %v", *lines)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	lines := captureOutput(t)
	dispatch(context.Background(), &stubExec{}, "frobnicate")
	if len(*lines) != 1 || !strings.Contains((*lines)[0], "Unknown command") {
		t.Errorf("output = %v, want unknown command hint", *lines)
	}
}

func TestDispatch_HelpDependsOnSession(t *testing.T) {
	lines := captureOutput(t)

	dispatch(context.Background(), &stubExec{loggedIn: false}, "help")
	dispatch(context.Background(), &stubExec{loggedIn: true}, "help")

	if len(*lines) != 2 {
		t.Fatalf("expected 2 help lines, got %v", *lines)
	}
	if !strings.Contains((*lines)[0], "register") {
		t.Errorf("anonymous help = %q, want register hint", (*lines)[0])
	}
	if !strings.Contains((*lines)[1], "whoami") {
		t.Errorf("logged-in help = %q, want whoami hint", (*lines)[1])
	}
}

func TestDispatch_CommandErrorIsPrinted(t *testing.T) {
	lines := captureOutput(t)
	s := &stubExec{err: errors.New("server: invalid credentials")}

	if done := dispatch(context.Background(), s, "login"); done {
		t.Fatal("a failed command must not exit the loop")
	}
	if len(*lines) != 1 || !strings.Contains((*lines)[0], "invalid credentials") {
		t.Errorf("output = %v, want the command error", *lines)
	}
}

func TestGetStatus(t *testing.T) {
	a := &App{}
	if got := a.getStatus(); got != "" {
		t.Errorf("getStatus() = %q, want empty for anonymous session", got)
	}
	a.login = "alice"
	if got := a.getStatus(); got != "(alice) " {
		t.Errorf("getStatus() = %q, want %q", got, "(alice) ")
	}
}
