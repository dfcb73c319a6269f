package tty

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// jobControlSignals are caught, not ignored: a caught signal reverts to its
// default action in a child at exec, an ignored one would be inherited.
var jobControlSignals = []os.Signal{
	unix.SIGINT,
	unix.SIGQUIT,
	unix.SIGTSTP,
	unix.SIGTTIN,
	unix.SIGTTOU,
}

func (c *Controller) setupSignalHandling() {
	signal.Notify(c.signalChan, jobControlSignals...)
	go c.handleSignals()
}

// handleSignals drops every job-control signal sent to the shell. The
// terminal delivers keyboard signals to the foreground group, so anything
// arriving here was meant for a group the shell is not.
func (c *Controller) handleSignals() {
	for sig := range c.signalChan {
		c.log.Printf("dropped %v", sig)
	}
}

// withoutTTOU runs fn with SIGTTOU ignored. tcsetpgrp from a background
// group raises SIGTTOU unless it is ignored or blocked.
func (c *Controller) withoutTTOU(fn func() error) error {
	signal.Ignore(unix.SIGTTOU)
	if c.catching {
		defer signal.Notify(c.signalChan, unix.SIGTTOU)
	} else {
		defer signal.Reset(unix.SIGTTOU)
	}
	return fn()
}
