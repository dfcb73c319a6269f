package tty

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// FatalError reports a failure after which the shell cannot safely keep
// running.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// maxBackgroundStops bounds how often AcquireForeground stops the shell
// waiting to be moved to the foreground. The kernel discards SIGTTIN for an
// orphaned process group, so the wait could otherwise spin forever.
const maxBackgroundStops = 100

// Controller moves terminal ownership between the shell and its children.
type Controller struct {
	session    *Session
	term       Terminal
	log        *log.Logger
	signalChan chan os.Signal
	catching   bool
	// stop suspends the process group pgrp until it is continued.
	stop func(pgrp int) error
}

func stopGroup(pgrp int) error {
	return unix.Kill(-pgrp, unix.SIGTTIN)
}

// NewController returns a controller for session s driving terminal t.
// A nil logger discards.
func NewController(s *Session, t Terminal, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		session:    s,
		term:       t,
		log:        logger,
		signalChan: make(chan os.Signal, 1),
		stop:       stopGroup,
	}
}

// Session returns the session the controller manages.
func (c *Controller) Session() *Session {
	return c.session
}

// AcquireForeground makes the shell the owner of its terminal. It waits
// (stopped) until the shell is in the foreground, takes over job-control
// signals, puts the shell in its own process group, hands the terminal to
// that group and saves the terminal modes. A non-interactive session only
// records its process group.
func (c *Controller) AcquireForeground() error {
	if !c.session.Interactive {
		c.session.PGID = unix.Getpgrp()
		return nil
	}

	for stops := 0; ; stops++ {
		fg, err := c.term.Foreground()
		if err != nil {
			return fmt.Errorf("reading terminal foreground group: %w", err)
		}
		pgrp := unix.Getpgrp()
		if fg == pgrp {
			break
		}
		if stops == maxBackgroundStops {
			return fmt.Errorf("process group %d still in the background after %d stops (foreground is %d)", pgrp, stops, fg)
		}
		if err := c.stop(pgrp); err != nil {
			return fmt.Errorf("stopping background shell: %w", err)
		}
	}

	c.setupSignalHandling()
	c.catching = true

	pid := unix.Getpid()
	if unix.Getpgrp() != pid {
		if err := unix.Setpgid(pid, pid); err != nil {
			return &FatalError{Op: "couldn't put the shell in its own process group", Err: err}
		}
	}
	c.session.PGID = pid

	if err := c.HandOff(pid); err != nil {
		return fmt.Errorf("claiming terminal: %w", err)
	}

	modes, err := term.GetState(c.session.TerminalFD)
	if err != nil {
		return fmt.Errorf("saving terminal modes: %w", err)
	}
	c.session.Modes = modes
	c.log.Printf("shell pgid %d owns terminal fd %d", pid, c.session.TerminalFD)
	return nil
}

// HandOff makes pgid the foreground process group of the terminal.
func (c *Controller) HandOff(pgid int) error {
	if !c.session.Interactive {
		return nil
	}
	return c.withoutTTOU(func() error {
		if err := c.term.SetForeground(pgid); err != nil {
			return fmt.Errorf("tcsetpgrp %d: %w", pgid, err)
		}
		return nil
	})
}

// Reclaim returns the terminal to the shell's group and restores the
// terminal modes saved at startup.
func (c *Controller) Reclaim() error {
	err := c.HandOff(c.session.PGID)
	if c.session.Interactive && c.session.Modes != nil {
		if rerr := term.Restore(c.session.TerminalFD, c.session.Modes); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restoring terminal modes: %w", rerr))
		}
	}
	return err
}

// Release stops signal delivery to the shell. Called once at teardown.
func (c *Controller) Release() {
	if !c.catching {
		return
	}
	signal.Stop(c.signalChan)
	close(c.signalChan)
	c.catching = false
}
