// Package qrender launches render jobs for a saved project document, either by
// spawning a detached renderer process or by calling an embedded renderer in
// the caller's own process, and reports a uniform Result back.
package qrender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quatton/qrender/pkg/qrender/qerr"
)

// Mode selects how a render job is executed
type Mode string

const (
	ModeExternal Mode = "external" // separate detached renderer process
	ModeInternal Mode = "internal" // embedded renderer on the calling goroutine
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExternal, "":
		return ModeExternal, nil
	case ModeInternal:
		return ModeInternal, nil
	default:
		return "", fmt.Errorf("unknown render mode %q (want %q or %q)", s, ModeExternal, ModeInternal)
	}
}

// Outcome is the terminal state reported for one launch attempt
type Outcome string

const (
	OutcomeStarted   Outcome = "started"   // external process spawned, not awaited
	OutcomeCompleted Outcome = "completed" // internal render returned
	OutcomeFailed    Outcome = "failed"
)

// Request describes one launch attempt. It is built fresh for every user
// action from the caller's current state.
type Request struct {
	DocumentPath    string `json:"document_path"`              // persisted source document, required
	OutputDirectory string `json:"output_directory,omitempty"` // defaults to renders/ next to the document
	ExecutablePath  string `json:"executable_path,omitempty"`  // required for external mode
	Mode            Mode   `json:"mode"`
	Animate         bool   `json:"animate"`               // whole animation vs a single frame
	Frame           int    `json:"frame,omitempty"`       // frame rendered when Animate is false
	SceneOutput     bool   `json:"scene_output,omitempty"` // keep the document's own output path
}

// ValidatedRequest is a Request that passed Resolve. Paths are absolute and
// the output directory exists.
type ValidatedRequest struct {
	DocumentPath    string
	OutputDirectory string
	OutputPattern   string
	LogPath         string
	ExecutablePath  string
	Mode            Mode
	Animate         bool
	Frame           int
	SceneOutput     bool
}

// Result is handed back to the caller once and not retained.
type Result struct {
	JobID     string    `json:"job_id"`
	Mode      Mode      `json:"mode"`
	Outcome   Outcome   `json:"outcome"`
	Kind      qerr.Code `json:"kind,omitempty"` // set only when Outcome is failed
	Message   string    `json:"message"`
	LogPath   string    `json:"log_path,omitempty"` // external mode only
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"started_at"`

	Err error `json:"-"`
}

// Failed reports whether the launch attempt failed.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// Executor runs a Request in one particular Mode
type Executor interface {
	Execute(ctx context.Context, req Request) Result
}

// failure converts err into a failed Result carrying its code.
func failure(err error) Result {
	return Result{
		Outcome: OutcomeFailed,
		Kind:    qerr.CodeOf(err),
		Message: unwrapMessage(err),
		Err:     err,
	}
}

// unwrapMessage drops the "code: " prefix so messages read naturally.
func unwrapMessage(err error) string {
	if e, ok := err.(*qerr.Error); ok && e.Unwrap() != nil {
		return e.Unwrap().Error()
	}
	return err.Error()
}
