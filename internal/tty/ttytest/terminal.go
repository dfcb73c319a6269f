// Package ttytest provides a terminal double for job-control tests.
package ttytest

// Terminal records foreground changes instead of touching a tty. It
// satisfies tty.Terminal.
type Terminal struct {
	Group   int
	Calls   []int
	SetErr  error
	ReadErr error
}

// NewTerminal returns a terminal whose foreground group is pgid.
func NewTerminal(pgid int) *Terminal {
	return &Terminal{Group: pgid}
}

func (t *Terminal) Foreground() (int, error) {
	return t.Group, t.ReadErr
}

func (t *Terminal) SetForeground(pgid int) error {
	t.Calls = append(t.Calls, pgid)
	if t.SetErr != nil {
		return t.SetErr
	}
	t.Group = pgid
	return nil
}
