// Package shell is the read-eval loop: it reads command lines, runs
// built-ins and hands everything else to the process launcher as a
// foreground or background job.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"jobshell/internal/config"
	"jobshell/internal/env"
	"jobshell/internal/history"
	"jobshell/internal/jobs"
	"jobshell/internal/plugin"
	"jobshell/internal/proc"
	"jobshell/internal/tty"
)

// LineReader supplies input lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(content string) error
	Close() error
}

// Options replaces the collaborators New would otherwise build. Zero values
// select the process's terminal, environment and standard files.
type Options struct {
	Reader   LineReader
	Env      env.Store
	Terminal tty.Terminal
	Stdin    *os.File
	Stdout   io.Writer
	Stderr   io.Writer
}

type Shell struct {
	config     *config.Config
	history    *history.History
	plugins    *plugin.Registry
	jobs       *jobs.Table
	session    *tty.Session
	ctl        *tty.Controller
	launcher   *proc.Launcher
	waiter     *proc.Waiter
	env        env.Store
	reader     LineReader
	stdout     io.Writer
	stderr     io.Writer
	log        *log.Logger
	logFile    io.Closer
	errColor   *color.Color
	lastStatus int
}

var errExit = errors.New("exit")

// New sets up a session: it takes the terminal foreground, isolates the
// shell in its own process group and loads history and plugins. A
// *tty.FatalError means the shell must not run.
func New(cfg *config.Config, opts Options) (*Shell, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Env == nil {
		opts.Env = env.OS{}
	}

	session := tty.NewSession(opts.Stdin)

	s := &Shell{
		config:   cfg,
		session:  session,
		env:      opts.Env,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		errColor: color.New(color.FgRed, color.Bold),
		plugins:  plugin.NewRegistry(),
	}
	switch cfg.Color {
	case config.ColorNever:
		s.errColor.DisableColor()
	case config.ColorAlways:
		s.errColor.EnableColor()
	}

	logOut := io.Discard
	logFile, err := cfg.OpenLog()
	if err != nil {
		return nil, fmt.Errorf("error opening log: %w", err)
	}
	if logFile != nil {
		logOut, s.logFile = logFile, logFile
	}
	s.log = log.New(logOut, fmt.Sprintf("[%s] ", session.ID), log.LstdFlags|log.Lmsgprefix)

	terminal := opts.Terminal
	if terminal == nil {
		terminal = tty.NewTerminal(session.TerminalFD)
	}
	s.ctl = tty.NewController(session, terminal, s.log)
	if err := s.ctl.AcquireForeground(); err != nil {
		s.closeLog()
		return nil, err
	}

	s.launcher = proc.NewLauncher(s.ctl, s.log)
	s.launcher.Stdin = opts.Stdin
	if f, ok := opts.Stdout.(*os.File); ok {
		s.launcher.Stdout = f
	}
	if f, ok := opts.Stderr.(*os.File); ok {
		s.launcher.Stderr = f
	}
	s.waiter = proc.NewWaiter(s.ctl)
	s.jobs = jobs.NewTable(cfg.MaxJobs, s.stdout)

	if s.history, err = history.New(cfg.Fs(), cfg.HistoryFile, cfg.MaxHistory); err != nil {
		s.abort()
		return nil, fmt.Errorf("error initializing history: %w", err)
	}
	if err := s.plugins.LoadAll(cfg.Plugins); err != nil {
		s.abort()
		return nil, fmt.Errorf("error loading plugins: %w", err)
	}

	s.reader = opts.Reader
	if s.reader == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:                 s.prompt(),
			HistoryLimit:           cfg.MaxHistory,
			DisableAutoSaveHistory: true,
		})
		if err != nil {
			s.abort()
			return nil, fmt.Errorf("error initializing readline: %w", err)
		}
		s.reader = rl
	}
	for _, line := range s.history.GetAll() {
		_ = s.reader.SaveHistory(line)
	}

	s.log.Printf("session started: interactive=%t pgid=%d max_jobs=%d", session.Interactive, session.PGID, cfg.MaxJobs)
	return s, nil
}

// Run reads and executes lines until exit or end of input. Job
// completions are reported before each prompt.
func (s *Shell) Run() error {
	for {
		s.reapJobs()

		s.reader.SetPrompt(s.prompt())
		line, err := s.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("error reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.record(line)

		if err := s.Execute(line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			s.report(err)
		}
	}
}

// Execute runs one command line.
func (s *Shell) Execute(input string) error {
	argv, background, err := Parse(input)
	if err != nil {
		return fmt.Errorf("error parsing command: %w", err)
	}
	if len(argv) == 0 {
		return nil
	}

	if ok, err := s.executeBuiltin(argv); ok {
		return err
	}
	if p, ok := s.plugins.Lookup(argv[0]); ok {
		return p.Execute(s.stdout, argv[1:])
	}

	if background {
		return s.runBackground(argv)
	}
	return s.runForeground(argv)
}

// LastStatus is the exit status of the last foreground command.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

// Jobs exposes the session's job table.
func (s *Shell) Jobs() *jobs.Table {
	return s.jobs
}

// Close ends the session: the job table is released, signal delivery is
// stopped and the reader is closed.
func (s *Shell) Close() error {
	s.jobs.Teardown()
	s.ctl.Release()
	err := s.reader.Close()
	s.log.Printf("session closed")
	return errors.Join(err, s.closeLog())
}

func (s *Shell) record(line string) {
	if err := s.history.Add(line); err != nil {
		s.log.Printf("saving history: %v", err)
	}
	if err := s.reader.SaveHistory(line); err != nil {
		s.log.Printf("readline history: %v", err)
	}
}

func (s *Shell) report(err error) {
	fmt.Fprintf(s.stderr, "%s %v\n", s.errColor.Sprint("Error:"), err)
}

func (s *Shell) abort() {
	s.ctl.Release()
	s.closeLog()
}

func (s *Shell) closeLog() error {
	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}
