package proc

import "golang.org/x/sys/unix"

// ExitStatus converts a wait status to the number a shell reports:
// the exit code, or 128 plus the signal that killed or stopped the process.
func ExitStatus(ws unix.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return 128 + int(ws.Signal())
	case ws.Stopped():
		return 128 + int(ws.StopSignal())
	}
	return -1
}
