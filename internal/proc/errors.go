package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Exit statuses reported for a command that could not be executed.
const (
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

// ErrNoCommand is returned when Launch is given an empty argument vector.
var ErrNoCommand = errors.New("no command")

// LaunchKind tells why a launch failed.
type LaunchKind int

const (
	// ForkFailed means no child process was created.
	ForkFailed LaunchKind = iota
	// ExecFailed means the program could not replace the child image.
	ExecFailed
)

func (k LaunchKind) String() string {
	switch k {
	case ForkFailed:
		return "fork failed"
	case ExecFailed:
		return "exec failed"
	default:
		return "unknown"
	}
}

// LaunchError is returned by Launcher.Launch.
type LaunchError struct {
	Kind    LaunchKind
	Command string
	// Status is the exit status a shell reports for the failure.
	Status int
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Kind == ExecFailed && e.Status == StatusNotFound {
		return fmt.Sprintf("%s: command not found", e.Command)
	}
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Kind, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// classify turns an error from exec.LookPath or exec.Cmd.Start into a
// LaunchError.
func classify(command string, err error) *LaunchError {
	le := &LaunchError{Kind: ForkFailed, Command: command, Status: 1, Err: err}

	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		le.Kind, le.Status = ExecFailed, StatusNotFound
		return le
	}

	var errno unix.Errno
	if !errors.As(err, &errno) {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			le.Kind, le.Status = ExecFailed, StatusNotFound
		case errors.Is(err, fs.ErrPermission):
			le.Kind, le.Status = ExecFailed, StatusNotExecutable
		}
		return le
	}

	switch errno {
	case unix.ENOENT, unix.ENOTDIR, unix.ELOOP, unix.ENAMETOOLONG:
		le.Kind, le.Status = ExecFailed, StatusNotFound
	case unix.EACCES, unix.EPERM, unix.ENOEXEC, unix.EISDIR, unix.ETXTBSY, unix.E2BIG:
		le.Kind, le.Status = ExecFailed, StatusNotExecutable
	}
	return le
}
