// Package cli owns the interactive session surface: the blocking menu loop,
// its prompts, and the user-facing messages. All IO goes through injected
// reader/writer so whole sessions can be scripted in tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"taskshare/internal/auth"
	"taskshare/internal/service"
	"taskshare/models"
)

const menuText = `
1. Register   2. Login   3. Reset Password   4. Forgot Password   5. Delete User
6. Add Task   7. List Tasks   8. Share Task   9. Delete Task
10. Complete Task   11. Edit Task   12. Exit
`

var (
	successf = color.New(color.FgGreen).SprintfFunc()
	errorf   = color.New(color.FgRed).SprintfFunc()
	noticef  = color.New(color.FgYellow).SprintfFunc()
	titlef   = color.New(color.FgBlue).SprintFunc()
)

// Menu drives one interactive session: it dispatches exactly one choice at a
// time to completion, and every failure returns control here with the session
// intact.
type Menu struct {
	rawIn    io.Reader
	in       *bufio.Reader
	out      io.Writer
	sess     *auth.Session
	accounts *service.AccountService
	tasks    *service.TaskService
}

func NewMenu(in io.Reader, out io.Writer, sess *auth.Session, accounts *service.AccountService, tasks *service.TaskService) *Menu {
	return &Menu{
		rawIn:    in,
		in:       bufio.NewReader(in),
		out:      out,
		sess:     sess,
		accounts: accounts,
		tasks:    tasks,
	}
}

// Run loops until option 12 or end of input. Only IO errors escape; operation
// failures are printed and the menu redisplays.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText+"\n")
		choice, err := m.promptInt("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case 1:
			err = m.register(ctx)
		case 2:
			err = m.login(ctx)
		case 3:
			err = m.resetPassword(ctx)
		case 4:
			err = m.forgotPassword(ctx)
		case 5:
			err = m.deleteUser(ctx)
		case 6:
			err = m.addTask(ctx)
		case 7:
			err = m.listTasks(ctx)
		case 8:
			err = m.shareTask(ctx)
		case 9:
			err = m.deleteTask(ctx)
		case 10:
			err = m.completeTask(ctx)
		case 11:
			err = m.editTask(ctx)
		case 12:
			fmt.Fprintln(m.out, noticef("Goodbye!"))
			return nil
		default:
			fmt.Fprintln(m.out, errorf("Invalid option. Please try again."))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// fail prints an operation failure. The session loop never dies over one.
func (m *Menu) fail(err error) {
	fmt.Fprintln(m.out, errorf("%s", capitalize(err.Error())))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func (m *Menu) register(ctx context.Context) error {
	var username string
	for {
		var err error
		username, err = m.prompt("Enter username: ")
		if err != nil {
			return err
		}
		taken, err := m.accounts.UsernameTaken(ctx, username)
		if err != nil {
			m.fail(err)
			return nil
		}
		if !taken {
			break
		}
		fmt.Fprintln(m.out, errorf("Username already taken. Please choose a different username."))
	}

	password, err := m.promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if err := auth.ValidatePassword(password); err != nil {
		m.fail(err)
		return nil
	}
	email, err := m.prompt("Enter email: ")
	if err != nil {
		return err
	}

	if _, err := m.accounts.Register(ctx, username, password, email); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("User registered successfully."))
	return nil
}

func (m *Menu) login(ctx context.Context) error {
	username, err := m.prompt("Enter username: ")
	if err != nil {
		return err
	}
	password, err := m.promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if err := m.accounts.Login(ctx, m.sess, username, password); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Login successful."))
	return nil
}

func (m *Menu) resetPassword(ctx context.Context) error {
	username, err := m.prompt("Enter your username: ")
	if err != nil {
		return err
	}
	current, err := m.promptPassword("Enter your current password: ")
	if err != nil {
		return err
	}
	newPassword, err := m.promptPassword("Enter your new password: ")
	if err != nil {
		return err
	}
	if err := m.accounts.ResetPassword(ctx, username, current, newPassword); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Password reset successfully."))
	return nil
}

func (m *Menu) forgotPassword(ctx context.Context) error {
	username, err := m.prompt("Enter your username: ")
	if err != nil {
		return err
	}
	email, err := m.prompt("Enter your email: ")
	if err != nil {
		return err
	}
	newPassword, err := m.promptPassword("Enter your new password: ")
	if err != nil {
		return err
	}
	if err := m.accounts.ForgotPassword(ctx, username, email, newPassword); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Password updated successfully."))
	return nil
}

func (m *Menu) deleteUser(ctx context.Context) error {
	if !m.sess.LoggedIn() {
		fmt.Fprintln(m.out, errorf("You need to log in first."))
		return nil
	}
	password, err := m.promptPassword("Enter your password: ")
	if err != nil {
		return err
	}
	if err := m.accounts.DeleteAccount(ctx, m.sess, password); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("User and their tasks deleted successfully."))
	return nil
}

func (m *Menu) addTask(ctx context.Context) error {
	if !m.sess.LoggedIn() {
		fmt.Fprintln(m.out, errorf("You need to log in first."))
		return nil
	}
	title, err := m.prompt("Enter task title: ")
	if err != nil {
		return err
	}
	if _, err := m.tasks.Add(ctx, m.sess, title); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Task added successfully."))
	return nil
}

func (m *Menu) listTasks(ctx context.Context) error {
	list, err := m.tasks.ListVisible(ctx, m.sess)
	if err != nil {
		m.fail(err)
		return nil
	}
	if len(list) == 0 {
		fmt.Fprintln(m.out, noticef("No tasks found."))
		return nil
	}
	m.printTasks(list, true)
	return nil
}

// printTasks renders a 1-based listing. When annotate is set, completed tasks
// and tasks shared in by another owner are marked for display.
func (m *Menu) printTasks(list []models.Task, annotate bool) {
	for i, t := range list {
		line := fmt.Sprintf("%d. %s", i+1, titlef(t.Title))
		if annotate {
			if t.Completed {
				line += " " + successf("[Completed]")
			}
			if t.OwnerUsername != m.sess.Username() {
				line += fmt.Sprintf(" (Shared by: %s)", t.OwnerUsername)
			}
		}
		fmt.Fprintln(m.out, line)
	}
}

// listOwnedForSelection re-queries the owner's tasks right before the index
// prompt so the selection matches the list on screen.
func (m *Menu) listOwnedForSelection(ctx context.Context) ([]models.Task, bool, error) {
	if !m.sess.LoggedIn() {
		fmt.Fprintln(m.out, errorf("You need to log in first."))
		return nil, false, nil
	}
	owned, err := m.tasks.ListOwned(ctx, m.sess)
	if err != nil {
		m.fail(err)
		return nil, false, nil
	}
	m.printTasks(owned, false)
	return owned, true, nil
}

func (m *Menu) shareTask(ctx context.Context) error {
	owned, ok, err := m.listOwnedForSelection(ctx)
	if err != nil || !ok {
		return err
	}
	index, err := m.promptInt("Enter task number to share: ")
	if err != nil {
		return err
	}
	target, err := m.prompt("Enter username to share the task with: ")
	if err != nil {
		return err
	}
	if err := m.tasks.Share(ctx, m.sess, owned, index, target); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Task shared with %s successfully.", target))
	return nil
}

func (m *Menu) deleteTask(ctx context.Context) error {
	owned, ok, err := m.listOwnedForSelection(ctx)
	if err != nil || !ok {
		return err
	}
	index, err := m.promptInt("Enter task number to delete: ")
	if err != nil {
		return err
	}
	if err := m.tasks.Delete(ctx, m.sess, owned, index); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Task deleted successfully."))
	return nil
}

func (m *Menu) completeTask(ctx context.Context) error {
	if !m.sess.LoggedIn() {
		fmt.Fprintln(m.out, errorf("You need to log in first."))
		return nil
	}
	visible, err := m.tasks.ListVisible(ctx, m.sess)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.printTasks(visible, true)
	index, err := m.promptInt("Enter task number to mark as completed: ")
	if err != nil {
		return err
	}
	if err := m.tasks.Complete(ctx, m.sess, visible, index); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Task marked as completed."))
	return nil
}

func (m *Menu) editTask(ctx context.Context) error {
	owned, ok, err := m.listOwnedForSelection(ctx)
	if err != nil || !ok {
		return err
	}
	index, err := m.promptInt("Enter task number to edit: ")
	if err != nil {
		return err
	}
	newTitle, err := m.prompt("Enter new task title: ")
	if err != nil {
		return err
	}
	if err := m.tasks.EditTitle(ctx, m.sess, owned, index, newTitle); err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintln(m.out, successf("Task edited successfully."))
	return nil
}
