package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"

	"taskshare/internal/auth"
	"taskshare/internal/service"
	"taskshare/internal/testutil"
	"taskshare/repository"
)

func init() {
	// Message assertions work on plain text.
	color.NoColor = true
}

func discardTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runSession feeds script to a fresh menu over an in-memory store and returns
// everything it printed.
func runSession(t *testing.T, dbName, script string) string {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, dbName)
	users := repository.NewUserRepository(d)
	tasks := repository.NewTaskRepository(d)
	tokens := auth.NewTokenManager("test-secret", time.Hour, "")
	sess := auth.NewSession()
	accounts := service.NewAccountService(users, tasks, tokens, bcrypt.MinCost, discardTestLogger())
	taskSvc := service.NewTaskService(users, tasks, discardTestLogger())

	var out strings.Builder
	m := NewMenu(strings.NewReader(script), &out, sess, accounts, taskSvc)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func wantContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
}

func TestMenu_FullSession(t *testing.T) {
	script := strings.Join([]string{
		"1", "alice", "Abc12345!", "a@x.com", // register
		"2", "alice", "Abc12345!", // login
		"6", "Buy milk", // add task
		"7",       // list
		"10", "1", // complete
		"7",  // list again
		"12", // exit
	}, "\n") + "\n"

	out := runSession(t, "cli_full", script)
	wantContains(t, out,
		"User registered successfully.",
		"Login successful.",
		"Task added successfully.",
		"1. Buy milk",
		"Task marked as completed.",
		"[Completed]",
		"Goodbye!",
	)
}

func TestMenu_InvalidOptionRedisplays(t *testing.T) {
	out := runSession(t, "cli_invalid", "99\nnope\n12\n")
	if got := strings.Count(out, "Invalid option. Please try again."); got != 2 {
		t.Fatalf("expected two invalid-option messages, got %d:\n%s", got, out)
	}
	// The menu must be shown again after a bad choice.
	if got := strings.Count(out, "12. Exit"); got < 3 {
		t.Fatalf("expected menu redisplayed, saw it %d times:\n%s", got, out)
	}
}

func TestMenu_TaskOpsRequireLogin(t *testing.T) {
	out := runSession(t, "cli_gate", "6\n7\n9\n12\n")
	if got := strings.Count(out, "You need to log in first."); got != 3 {
		t.Fatalf("expected three login-required messages, got %d:\n%s", got, out)
	}
}

func TestMenu_RegisterRepromptsOnTakenUsername(t *testing.T) {
	script := strings.Join([]string{
		"1", "alice", "Abc12345!", "a@x.com",
		"1", "alice", "alice2", "Abc12345!", "a2@x.com",
		"12",
	}, "\n") + "\n"

	out := runSession(t, "cli_dup", script)
	wantContains(t, out, "Username already taken. Please choose a different username.")
	if got := strings.Count(out, "User registered successfully."); got != 2 {
		t.Fatalf("expected two successful registrations, got %d:\n%s", got, out)
	}
}

func TestMenu_WeakPasswordAbortsRegistration(t *testing.T) {
	out := runSession(t, "cli_weak", "1\nalice\nabcdefgh\n12\n")
	wantContains(t, out, "Password must be at least 8 characters long and contain a letter, a number and a special character")
	if strings.Contains(out, "User registered successfully.") {
		t.Fatalf("weak password must abort registration:\n%s", out)
	}
}

func TestMenu_InvalidSelectionMessage(t *testing.T) {
	script := strings.Join([]string{
		"1", "alice", "Abc12345!", "a@x.com",
		"2", "alice", "Abc12345!",
		"6", "Buy milk",
		"9", "5", // delete with out-of-range index
		"7", // task must still be there
		"12",
	}, "\n") + "\n"

	out := runSession(t, "cli_badindex", script)
	wantContains(t, out, "Invalid task number", "1. Buy milk")
	if strings.Contains(out, "Task deleted successfully.") {
		t.Fatalf("out-of-range delete must fail:\n%s", out)
	}
}

func TestMenu_ShareFlow(t *testing.T) {
	script := strings.Join([]string{
		"1", "alice", "Abc12345!", "a@x.com",
		"1", "bob", "Bob12345!", "b@x.com",
		"2", "alice", "Abc12345!",
		"6", "Plan trip",
		"8", "1", "bob", // share task 1 with bob
		"2", "bob", "Bob12345!", // switch session to bob
		"7", // bob lists: sees alice's task
		"12",
	}, "\n") + "\n"

	out := runSession(t, "cli_share", script)
	wantContains(t, out,
		"Task shared with bob successfully.",
		"1. Plan trip (Shared by: alice)",
	)
}

func TestMenu_EndOfInputEndsSession(t *testing.T) {
	// Script ends without option 12; the loop must wind down cleanly.
	out := runSession(t, "cli_eof", "7\n")
	wantContains(t, out, "You need to log in first.")
}
