package jobs

import (
	"golang.org/x/sys/unix"
)

func pollWait(pid int) (Status, bool, error) {
	var ws unix.WaitStatus
	wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
	for err == unix.EINTR {
		wpid, err = unix.Wait4(pid, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
	}
	switch {
	case err == unix.ECHILD:
		// Already reaped elsewhere, or never ours.
		return Done, true, nil
	case err != nil:
		return 0, false, err
	case wpid == 0:
		return 0, false, nil
	}

	switch {
	case ws.Exited(), ws.Signaled():
		return Done, true, nil
	case ws.Stopped():
		return Stopped, true, nil
	case ws.Continued():
		return Running, true, nil
	}
	return 0, false, nil
}
