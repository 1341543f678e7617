package qrender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/qrender/pkg/kv"
	"github.com/quatton/qrender/pkg/qlog"
	"github.com/quatton/qrender/pkg/qrender/qerr"
)

// DefaultLockTTL bounds how long an output directory stays locked if a
// launch never releases it.
const DefaultLockTTL = 30 * time.Second

// ExternalExecutor renders by spawning a detached renderer process.
type ExternalExecutor struct {
	supervisor *Supervisor
	locks      kv.Store // optional
	lockTTL    time.Duration
	logger     *qlog.Logger
}

func (e *ExternalExecutor) Execute(ctx context.Context, req Request) Result {
	v, err := Resolve(req)
	if err != nil {
		return failure(err)
	}

	args := BuildCommand(v)
	e.logger.Debug("built render command", "argc", len(args), "output", v.OutputDirectory)

	if e.locks != nil {
		unlock, err := kv.Lock(ctx, e.locks, lockKey(v.OutputDirectory), e.lockTTL)
		if err != nil {
			if errors.Is(err, kv.ErrLocked) {
				return failure(qerr.Newf(qerr.CodeLaunchFailure,
					"another render is starting in %s, try again", v.OutputDirectory))
			}
			return failure(qerr.New(qerr.CodeLaunchFailure, fmt.Errorf("acquiring launch lock: %w", err)))
		}
		defer unlock()
	}

	return e.supervisor.Launch(args, v.OutputDirectory)
}

func lockKey(outputDir string) string {
	return "launch-lock:" + outputDir
}

// InternalExecutor renders through the embedded renderer, blocking the caller.
type InternalExecutor struct {
	invoker *Invoker
}

func (e *InternalExecutor) Execute(ctx context.Context, req Request) Result {
	v, err := Resolve(req)
	if err != nil {
		return failure(err)
	}
	return e.invoker.RenderNow(ctx, v)
}

// Launcher is the single entry point callers use to start a render job.
type Launcher struct {
	external Executor
	internal Executor
	logger   *qlog.Logger
	now      func() time.Time
}

type launcherOptions struct {
	logger   *qlog.Logger
	spawner  Spawner
	renderer EmbeddedRenderer
	locks    kv.Store
	lockTTL  time.Duration
}

// LauncherOption configures a Launcher
type LauncherOption func(*launcherOptions)

// WithLogger sets the logger shared by all launcher components
func WithLogger(l *qlog.Logger) LauncherOption {
	return func(o *launcherOptions) {
		o.logger = l
	}
}

// WithProcessSpawner replaces the OS spawner used for external renders
func WithProcessSpawner(sp Spawner) LauncherOption {
	return func(o *launcherOptions) {
		o.spawner = sp
	}
}

// WithEmbeddedRenderer sets the renderer used for internal renders
func WithEmbeddedRenderer(r EmbeddedRenderer) LauncherOption {
	return func(o *launcherOptions) {
		o.renderer = r
	}
}

// WithLaunchLocks serializes external launches per output directory through
// store. A ttl of zero uses DefaultLockTTL.
func WithLaunchLocks(store kv.Store, ttl time.Duration) LauncherOption {
	return func(o *launcherOptions) {
		o.locks = store
		o.lockTTL = ttl
	}
}

func NewLauncher(opts ...LauncherOption) *Launcher {
	o := &launcherOptions{logger: qlog.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if o.lockTTL <= 0 {
		o.lockTTL = DefaultLockTTL
	}

	supOpts := []SupervisorOption{WithSupervisorLogger(o.logger)}
	if o.spawner != nil {
		supOpts = append(supOpts, WithSpawner(o.spawner))
	}

	return &Launcher{
		external: &ExternalExecutor{
			supervisor: NewSupervisor(supOpts...),
			locks:      o.locks,
			lockTTL:    o.lockTTL,
			logger:     o.logger,
		},
		internal: &InternalExecutor{invoker: NewInvoker(o.renderer, o.logger)},
		logger:   o.logger,
		now:      time.Now,
	}
}

// Executor returns the variant that handles mode.
func (l *Launcher) Executor(mode Mode) (Executor, error) {
	switch mode {
	case ModeExternal:
		return l.external, nil
	case ModeInternal:
		return l.internal, nil
	default:
		return nil, fmt.Errorf("unsupported render mode %q", mode)
	}
}

// LaunchRenderJob runs one launch attempt and always returns a Result.
// External jobs return once the process is started; internal jobs return
// when the render is finished.
func (l *Launcher) LaunchRenderJob(ctx context.Context, req Request) Result {
	if req.Mode == "" {
		req.Mode = ModeExternal
	}
	jobID := newJobID()
	started := l.now()
	log := l.logger.With("job", jobID, "mode", string(req.Mode))

	var res Result
	if exec, err := l.Executor(req.Mode); err != nil {
		res = failure(err)
	} else {
		log.Debug("launching render", "document", req.DocumentPath)
		res = exec.Execute(ctx, req)
	}

	res.JobID = jobID
	res.Mode = req.Mode
	res.StartedAt = started

	if res.Failed() {
		log.Error("render launch failed", "kind", string(res.Kind), "error", res.Message)
	} else {
		log.Info("render "+string(res.Outcome), "log", res.LogPath, "pid", res.PID)
	}
	return res
}

// newJobID returns a time-ordered identifier for a launch.
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
