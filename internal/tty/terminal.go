package tty

import (
	"golang.org/x/sys/unix"
)

// Terminal reads and sets the foreground process group of a terminal.
type Terminal interface {
	Foreground() (int, error)
	SetForeground(pgid int) error
}

type ttyTerminal struct {
	fd int
}

// NewTerminal returns the Terminal backed by the tty open on fd.
func NewTerminal(fd int) Terminal {
	return &ttyTerminal{fd: fd}
}

func (t *ttyTerminal) Foreground() (int, error) {
	return unix.IoctlGetInt(t.fd, unix.TIOCGPGRP)
}

func (t *ttyTerminal) SetForeground(pgid int) error {
	return unix.IoctlSetPointerInt(t.fd, unix.TIOCSPGRP, pgid)
}
