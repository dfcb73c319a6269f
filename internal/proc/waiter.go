package proc

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"jobshell/internal/tty"
)

// Result describes how a foreground job gave the terminal back.
type Result struct {
	PID     int
	Status  int
	Stopped bool
}

// Waiter blocks on foreground jobs.
type Waiter struct {
	ctl  *tty.Controller
	wait func(pid int, ws *unix.WaitStatus, options int, ru *unix.Rusage) (int, error)
}

// NewWaiter returns a waiter that reclaims the terminal through ctl.
func NewWaiter(ctl *tty.Controller) *Waiter {
	return &Waiter{ctl: ctl, wait: unix.Wait4}
}

// Wait blocks until the leader of process group pgid exits or stops. The
// terminal is handed back to the shell before Wait returns, whatever the
// outcome of the wait.
func (w *Waiter) Wait(pgid int) (res Result, err error) {
	defer func() {
		if rerr := w.ctl.Reclaim(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("reclaiming terminal: %w", rerr))
		}
	}()

	var ws unix.WaitStatus
	for {
		pid, werr := w.wait(-pgid, &ws, unix.WUNTRACED, nil)
		if werr == unix.EINTR {
			continue
		}
		if werr != nil {
			return Result{PID: pgid, Status: -1}, fmt.Errorf("wait for process group %d: %w", pgid, werr)
		}
		if pid == pgid {
			break
		}
	}

	return Result{PID: pgid, Status: ExitStatus(ws), Stopped: ws.Stopped()}, nil
}
