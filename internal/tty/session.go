// Package tty owns the shell's controlling terminal: who is in the
// foreground, what the saved terminal modes are, and how job-control
// signals are disposed of in the shell process.
package tty

import (
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"
)

// Session is the process-wide state of one interactive shell. It is filled
// in once by Controller.AcquireForeground and only read afterwards.
type Session struct {
	ID          string
	TerminalFD  int
	Modes       *term.State
	PGID        int
	Interactive bool
}

// NewSession describes a shell reading from f. The session is interactive
// only when f is a terminal.
func NewSession(f *os.File) *Session {
	fd := int(f.Fd())
	return &Session{
		ID:          uuid.NewString(),
		TerminalFD:  fd,
		Interactive: term.IsTerminal(fd),
	}
}
