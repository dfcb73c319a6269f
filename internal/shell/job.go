package shell

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"jobshell/internal/jobs"
	"jobshell/internal/proc"
)

func commandText(argv []string) string {
	return strings.Join(argv, " ")
}

// runBackground refuses before forking when the table is full, so no child
// is ever left untracked.
func (s *Shell) runBackground(argv []string) error {
	if s.jobs.Full() {
		return fmt.Errorf("%s: %w (%d jobs)", argv[0], jobs.ErrFull, s.jobs.Cap())
	}

	pid, err := s.launcher.Launch(argv, true)
	if err != nil {
		return err
	}

	if _, err := s.jobs.Insert(pid, commandText(argv)); err != nil {
		killAndReap(pid)
		return fmt.Errorf("%s: process group %d killed: %w", argv[0], pid, err)
	}
	return nil
}

func (s *Shell) runForeground(argv []string) error {
	pid, err := s.launcher.Launch(argv, false)
	if err != nil {
		var le *proc.LaunchError
		if errors.As(err, &le) {
			s.lastStatus = le.Status
		}
		return err
	}

	res, err := s.waiter.Wait(pid)
	s.lastStatus = res.Status
	if err != nil {
		return err
	}
	s.log.Printf("foreground %d returned status %d stopped=%t", pid, res.Status, res.Stopped)

	if res.Stopped {
		fmt.Fprintln(s.stdout)
		if _, err := s.jobs.InsertStopped(pid, commandText(argv)); err != nil {
			killAndReap(pid)
			return fmt.Errorf("stopped process group %d killed: %w", pid, err)
		}
	}
	return nil
}

// killAndReap disposes of a process group the table could not take.
// SIGKILL also ends stopped members.
func killAndReap(pid int) {
	_ = unix.Kill(-pid, unix.SIGKILL)
	var ws unix.WaitStatus
	for {
		if _, err := unix.Wait4(pid, &ws, 0, nil); err != unix.EINTR {
			return
		}
	}
}

// reapJobs polls background jobs and announces the ones that finished.
func (s *Shell) reapJobs() {
	finished, err := s.jobs.Reap()
	if err != nil {
		s.log.Printf("reap: %v", err)
	}
	for _, job := range finished {
		fmt.Fprintf(s.stdout, "[%d]+ %s\t%s\n", job.ID, job.Status, job.Command)
	}
}
