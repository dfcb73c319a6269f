package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"jobshell/internal/jobs"
)

func (s *Shell) executeBuiltin(args []string) (bool, error) {
	switch args[0] {
	case "cd":
		return true, s.changeDirectory(args[1:])
	case "exit":
		return true, errExit
	case "history":
		return true, s.showHistory()
	case "jobs":
		return true, s.listJobs(args)
	case "prompt":
		return true, s.promptBuiltin(args[1:])
	case "pwd":
		return true, s.printWorkingDirectory()
	default:
		return false, nil
	}
}

func (s *Shell) changeDirectory(args []string) error {
	var dir string
	switch len(args) {
	case 0:
		dir = s.config.HomeDir
		if dir == "" {
			home, ok := s.env.Get("HOME")
			if !ok || home == "" {
				return errors.New("cd: Home directory not set")
			}
			dir = home
		}
	case 1:
		dir = args[0]
	default:
		return errors.New("cd: too many arguments")
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

func (s *Shell) showHistory() error {
	for i, cmd := range s.history.GetAll() {
		fmt.Fprintf(s.stdout, "%d: %s\n", i+1, cmd)
	}
	return nil
}

// listJobs prints "[id] pid status command" per tracked job.
func (s *Shell) listJobs(args []string) error {
	opts := getopt.New()
	pidsOnly := opts.BoolLong("pid", 'p', "list process group ids only")
	runningOnly := opts.BoolLong("running", 'r', "list running jobs only")
	stoppedOnly := opts.BoolLong("stopped", 's', "list stopped jobs only")

	if err := opts.Getopt(args, nil); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	if opts.NArgs() > 0 {
		return errors.New("jobs: too many arguments")
	}

	for _, job := range s.jobs.List() {
		if *runningOnly && job.Status != jobs.Running {
			continue
		}
		if *stoppedOnly && job.Status != jobs.Stopped {
			continue
		}
		if *pidsOnly {
			fmt.Fprintln(s.stdout, job.PID)
			continue
		}
		fmt.Fprintln(s.stdout, job)
	}
	return nil
}

func (s *Shell) promptBuiltin(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.stdout, s.prompt())
		return nil
	}
	if err := s.setPrompt(strings.Join(args, " ")); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func (s *Shell) printWorkingDirectory() error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("pwd: %w", err)
	}
	fmt.Fprintln(s.stdout, dir)
	return nil
}
