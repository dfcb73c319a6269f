package jobs

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	// ErrFull is returned when the table is at capacity.
	ErrFull = errors.New("job table full")
	// ErrClosed is returned after Teardown.
	ErrClosed = errors.New("job table closed")
)

// pollFunc reports a change of state of pid without blocking. changed is
// false when nothing happened since the last poll.
type pollFunc func(pid int) (status Status, changed bool, err error)

// Table is a bounded, insertion-ordered collection of jobs. Done jobs stay
// listed until Teardown so ids keep meaning something to the user.
type Table struct {
	mu       sync.Mutex
	jobs     []*Job
	capacity int
	nextID   int
	out      io.Writer
	poll     pollFunc
	closed   bool
}

// NewTable returns an empty table holding at most capacity jobs. Insert
// feedback is written to out.
func NewTable(capacity int, out io.Writer) *Table {
	if out == nil {
		out = io.Discard
	}
	return &Table{
		jobs:     make([]*Job, 0, capacity),
		capacity: capacity,
		nextID:   1,
		out:      out,
		poll:     pollWait,
	}
}

// Insert records a running job for the process group led by pid and prints
// its "[id] pid" line.
func (t *Table) Insert(pid int, command string) (int, error) {
	return t.insert(pid, command, Running)
}

// InsertStopped records a job whose process group is already stopped.
func (t *Table) InsertStopped(pid int, command string) (int, error) {
	return t.insert(pid, command, Stopped)
}

func (t *Table) insert(pid int, command string, status Status) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}
	if len(t.jobs) >= t.capacity {
		return 0, fmt.Errorf("%w (%d jobs)", ErrFull, t.capacity)
	}

	job := &Job{
		ID:      t.nextID,
		PID:     pid,
		Command: strings.Clone(command),
		Status:  status,
	}
	t.jobs = append(t.jobs, job)
	t.nextID++

	fmt.Fprintf(t.out, "[%d] %d\n", job.ID, job.PID)
	return job.ID, nil
}

// Full reports whether another Insert would fail for lack of room.
func (t *Table) Full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs) >= t.capacity
}

// Len returns the number of tracked jobs, Done ones included.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// Cap returns the table capacity.
func (t *Table) Cap() int {
	return t.capacity
}

// Reap polls every unfinished job once without blocking and updates its
// status. It returns the jobs that finished during this call.
func (t *Table) Reap() ([]Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var finished []Job
	var errs []error
	for _, job := range t.jobs {
		if job.Status == Done {
			continue
		}
		status, changed, err := t.poll(job.PID)
		if err != nil {
			errs = append(errs, fmt.Errorf("job %d (pid %d): %w", job.ID, job.PID, err))
			continue
		}
		if !changed || status == job.Status {
			continue
		}
		job.Status = status
		if status == Done {
			finished = append(finished, *job)
		}
	}
	return finished, errors.Join(errs...)
}

// List returns a copy of all jobs in insertion order.
func (t *Table) List() []Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	jobs := make([]Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		jobs = append(jobs, *job)
	}
	return jobs
}

// Teardown drops every job. The table refuses inserts afterwards.
func (t *Table) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.jobs = nil
	t.closed = true
}
