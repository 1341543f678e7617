package qrender

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/quatton/qrender/pkg/qlog"
	"github.com/quatton/qrender/pkg/qrender/qerr"
)

// Spawner starts a process whose stdout and stderr are both written to log.
// It must not wait for the process to finish.
type Spawner interface {
	Spawn(args []string, log *os.File) (pid int, err error)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(args []string, log *os.File) (int, error)

func (f SpawnerFunc) Spawn(args []string, log *os.File) (int, error) {
	return f(args, log)
}

// execSpawner starts a detached OS process.
type execSpawner struct {
	logger *qlog.Logger
}

func (s execSpawner) Spawn(args []string, log *os.File) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("empty command")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = log
	cmd.Stderr = log
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	// Reap the child so it does not linger as a zombie. Nobody observes the result.
	go func() {
		err := cmd.Wait()
		s.logger.Debug("render process exited", "pid", pid, "err", err)
	}()
	return pid, nil
}

// Supervisor launches external renders with their output captured in the
// output directory's render log. It never waits on the spawned process.
type Supervisor struct {
	spawner Spawner
	openLog func(path string) (*os.File, error)
	logger  *qlog.Logger
}

// SupervisorOption configures a Supervisor
type SupervisorOption func(*Supervisor)

// WithSpawner replaces the OS process spawner
func WithSpawner(sp Spawner) SupervisorOption {
	return func(s *Supervisor) {
		s.spawner = sp
	}
}

// WithSupervisorLogger sets the logger used for launch diagnostics
func WithSupervisorLogger(l *qlog.Logger) SupervisorOption {
	return func(s *Supervisor) {
		s.logger = l
	}
}

func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		openLog: os.Create,
		logger:  qlog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = execSpawner{logger: s.logger}
	}
	return s
}

// Launch truncates <outputDir>/render_log.txt, hands it to a new process
// running args and returns as soon as the process exists. The log handle is
// closed before returning whether or not the spawn succeeded.
//
// Launch never waits on the process. The default spawner reaps it from a
// background goroutine; that Wait is the only one and its result is only
// logged.
func (s *Supervisor) Launch(args []string, outputDir string) Result {
	logPath := filepath.Join(outputDir, LogFileName)

	logFile, err := s.openLog(logPath)
	if err != nil {
		return failure(qerr.New(qerr.CodeLaunchFailure, fmt.Errorf("failed to open render log: %w", err)))
	}
	// The child holds its own copy of the descriptor after Spawn.
	defer logFile.Close()

	s.logger.Debug("spawning renderer", "args", fmt.Sprint(args), "log", logPath)

	pid, err := s.spawner.Spawn(args, logFile)
	if err != nil {
		return failure(qerr.New(qerr.CodeLaunchFailure, fmt.Errorf("failed to start render: %w", err)))
	}

	return Result{
		Outcome: OutcomeStarted,
		Message: fmt.Sprintf("Rendering started. Logs at %s", logPath),
		LogPath: logPath,
		PID:     pid,
	}
}
