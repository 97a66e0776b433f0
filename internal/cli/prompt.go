package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// prompt prints label and reads one trimmed line.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt reads a line and parses it as an integer. Non-numeric input
// yields 0, which every selection path rejects as out of range.
func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, nil
	}
	return n, nil
}

// promptPassword reads a password without echo when stdin is a terminal, and
// as a plain line otherwise so sessions can be scripted in tests.
func (m *Menu) promptPassword(label string) (string, error) {
	if f, ok := m.rawIn.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(m.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(m.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return m.prompt(label)
}
