// Package proc starts external programs in their own process groups and
// waits for foreground ones.
package proc

import (
	"errors"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"

	"jobshell/internal/tty"
)

// Launcher starts commands for a shell session.
type Launcher struct {
	ctl    *tty.Controller
	log    *log.Logger
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// NewLauncher returns a launcher whose children inherit the process's
// standard files.
func NewLauncher(ctl *tty.Controller, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Launcher{
		ctl:    ctl,
		log:    logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch starts argv as the leader of a new process group and returns its
// pid, which is also the group id. It does not wait. A foreground launch in
// an interactive session gives the new group the terminal before the
// program runs.
func (l *Launcher) Launch(argv []string, background bool) (int, error) {
	if len(argv) == 0 {
		return 0, ErrNoCommand
	}
	session := l.ctl.Session()
	foreground := !background && session.Interactive

	path, err := exec.LookPath(argv[0])
	if err != nil && !errors.Is(err, exec.ErrDot) {
		return 0, l.fail(argv[0], err, foreground)
	}

	cmd := &exec.Cmd{
		Path: path,
		Args: argv,
		SysProcAttr: &syscall.SysProcAttr{
			Setpgid:    true,
			Foreground: foreground,
			// With Foreground, Ctty is the terminal's descriptor in
			// this process, not in the child.
			Ctty: session.TerminalFD,
		},
	}
	// Nil *os.File values must stay nil interfaces.
	if l.Stdin != nil {
		cmd.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		cmd.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		cmd.Stderr = l.Stderr
	}
	if err := cmd.Start(); err != nil {
		return 0, l.fail(argv[0], err, foreground)
	}

	pid := cmd.Process.Pid
	// The shell reaps with wait4; drop the os.Process handle.
	if err := cmd.Process.Release(); err != nil {
		l.log.Printf("release %d: %v", pid, err)
	}
	l.log.Printf("started %q pid %d background=%t", argv[0], pid, background)
	return pid, nil
}

func (l *Launcher) fail(command string, err error, foreground bool) error {
	le := classify(command, err)
	l.log.Printf("launch %q: %v", command, err)
	if foreground {
		// The child may have claimed the terminal before exec failed.
		if rerr := l.ctl.Reclaim(); rerr != nil {
			l.log.Printf("reclaim after failed launch: %v", rerr)
		}
	}
	return le
}
