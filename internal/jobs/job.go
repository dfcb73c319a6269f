// Package jobs tracks background jobs of a shell session.
package jobs

import "fmt"

// Status is the run state of a job.
type Status int

const (
	Running Status = iota
	Stopped
	Done
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Job is one tracked process group.
type Job struct {
	ID      int
	PID     int
	Command string
	Status  Status
}

func (j Job) String() string {
	return fmt.Sprintf("[%d] %d %s %s", j.ID, j.PID, j.Status, j.Command)
}
