package qrender

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// ForegroundRenderer is an EmbeddedRenderer for callers without a host
// application: it runs the renderer executable and waits for it to exit.
type ForegroundRenderer struct {
	Executable string
	Stdout     io.Writer
	Stderr     io.Writer
}

func (f ForegroundRenderer) Render(ctx context.Context, s RenderSettings) error {
	if f.Executable == "" {
		return errors.New("no renderer executable configured")
	}

	args := BuildCommand(ValidatedRequest{
		DocumentPath:   s.DocumentPath,
		OutputPattern:  s.OutputPattern,
		ExecutablePath: f.Executable,
		Animate:        s.Animate,
		Frame:          s.Frame,
		SceneOutput:    s.SceneOutput,
	})

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = f.Stdout
	cmd.Stderr = f.Stderr
	return cmd.Run()
}
