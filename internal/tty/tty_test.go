package tty

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"jobshell/internal/tty/ttytest"
)

func TestNewSessionNotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	s := NewSession(r)
	assert.False(t, s.Interactive)
	assert.Equal(t, int(r.Fd()), s.TerminalFD)
	assert.NotEmpty(t, s.ID)
}

func TestAcquireForegroundNonInteractive(t *testing.T) {
	term := ttytest.NewTerminal(1)
	s := &Session{}
	c := NewController(s, term, nil)

	require.NoError(t, c.AcquireForeground())
	assert.Equal(t, unix.Getpgrp(), s.PGID)
	assert.Nil(t, s.Modes)
	assert.Empty(t, term.Calls)
}

func TestHandOffNonInteractive(t *testing.T) {
	term := ttytest.NewTerminal(1)
	c := NewController(&Session{PGID: 1}, term, nil)

	assert.NoError(t, c.HandOff(55))
	assert.NoError(t, c.Reclaim())
	assert.Empty(t, term.Calls)
}

func TestHandOffAndReclaim(t *testing.T) {
	term := ttytest.NewTerminal(100)
	c := NewController(&Session{PGID: 100, Interactive: true}, term, nil)

	require.NoError(t, c.HandOff(200))
	assert.Equal(t, 200, term.Group)

	require.NoError(t, c.Reclaim())
	assert.Equal(t, 100, term.Group)
	assert.Equal(t, []int{200, 100}, term.Calls)
}

func TestHandOffError(t *testing.T) {
	term := &ttytest.Terminal{Group: 100, SetErr: unix.ENOTTY}
	c := NewController(&Session{PGID: 100, Interactive: true}, term, nil)

	err := c.HandOff(200)
	assert.ErrorIs(t, err, unix.ENOTTY)
	assert.Equal(t, 100, term.Group)
}

func TestFatalError(t *testing.T) {
	err := error(&FatalError{Op: "setpgid", Err: unix.EPERM})

	var fatal *FatalError
	assert.True(t, errors.As(err, &fatal))
	assert.ErrorIs(t, err, unix.EPERM)
	assert.Equal(t, "setpgid: operation not permitted", err.Error())
}

func TestReleaseWithoutSignals(t *testing.T) {
	c := NewController(&Session{}, ttytest.NewTerminal(0), nil)
	assert.NotPanics(t, c.Release)
	assert.NotPanics(t, c.Release)
}

func TestAcquireForegroundStaysInBackground(t *testing.T) {
	term := ttytest.NewTerminal(-1)
	s := &Session{Interactive: true}
	c := NewController(s, term, nil)
	stops := 0
	c.stop = func(pgrp int) error {
		assert.Equal(t, unix.Getpgrp(), pgrp)
		stops++
		return nil
	}

	err := c.AcquireForeground()
	assert.ErrorContains(t, err, "still in the background")
	assert.Equal(t, maxBackgroundStops, stops)
	assert.Empty(t, term.Calls)
	assert.False(t, c.catching)
	assert.Zero(t, s.PGID)
}

func TestAcquireForegroundStopFails(t *testing.T) {
	c := NewController(&Session{Interactive: true}, ttytest.NewTerminal(-1), nil)
	c.stop = func(int) error { return unix.EPERM }

	assert.ErrorIs(t, c.AcquireForeground(), unix.EPERM)
}

func TestAcquireForegroundReadError(t *testing.T) {
	term := &ttytest.Terminal{ReadErr: unix.ENOTTY}
	c := NewController(&Session{Interactive: true}, term, nil)
	c.stop = func(int) error {
		t.Fatal("stopped the shell without knowing the foreground group")
		return nil
	}

	assert.ErrorIs(t, c.AcquireForeground(), unix.ENOTTY)
}
