package qrender

import (
	"context"
	"fmt"

	"github.com/quatton/qrender/pkg/qlog"
	"github.com/quatton/qrender/pkg/qrender/qerr"
)

// RenderSettings is what an embedded renderer needs to render a document.
type RenderSettings struct {
	DocumentPath    string
	OutputDirectory string
	OutputPattern   string
	Animate         bool
	Frame           int
	SceneOutput     bool
}

// EmbeddedRenderer is the host's synchronous render entry point. Render
// blocks until the render is done.
type EmbeddedRenderer interface {
	Render(ctx context.Context, settings RenderSettings) error
}

// RendererFunc adapts a function to EmbeddedRenderer.
type RendererFunc func(ctx context.Context, settings RenderSettings) error

func (f RendererFunc) Render(ctx context.Context, settings RenderSettings) error {
	return f(ctx, settings)
}

// Invoker calls an EmbeddedRenderer on the calling goroutine. Errors and
// panics from the renderer stop here and come back as failed Results.
type Invoker struct {
	renderer EmbeddedRenderer
	logger   *qlog.Logger
}

func NewInvoker(renderer EmbeddedRenderer, logger *qlog.Logger) *Invoker {
	if logger == nil {
		logger = qlog.Discard()
	}
	return &Invoker{renderer: renderer, logger: logger}
}

// RenderNow runs the render and blocks until the renderer returns.
func (i *Invoker) RenderNow(ctx context.Context, v ValidatedRequest) (res Result) {
	if i.renderer == nil {
		return failure(qerr.Newf(qerr.CodeInternalRender, "no embedded renderer is available"))
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("embedded renderer panicked", "panic", fmt.Sprint(r))
			res = failure(qerr.Newf(qerr.CodeInternalRender, "render failed: %v", r))
		}
	}()

	settings := RenderSettings{
		DocumentPath:    v.DocumentPath,
		OutputDirectory: v.OutputDirectory,
		OutputPattern:   v.OutputPattern,
		Animate:         v.Animate,
		Frame:           v.Frame,
		SceneOutput:     v.SceneOutput,
	}
	if err := i.renderer.Render(ctx, settings); err != nil {
		return failure(qerr.New(qerr.CodeInternalRender, fmt.Errorf("render failed: %w", err)))
	}

	return Result{
		Outcome: OutcomeCompleted,
		Message: fmt.Sprintf("Rendering finished. Check the '%s' directory for outputs.", v.OutputDirectory),
	}
}
