package routes

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/qrender/pkg/qapi/schemas"
	"github.com/quatton/qrender/pkg/qrender"
)

// LaunchRenderInput defines the input for launching a render
type LaunchRenderInput struct {
	Body schemas.RenderJobRequest
}

// LaunchRenderOutput is the response for launching a render
type LaunchRenderOutput struct {
	Body schemas.RenderJobResponse
}

// Launcher starts render jobs. *qrender.Launcher implements it.
type Launcher interface {
	LaunchRenderJob(ctx context.Context, req qrender.Request) qrender.Result
}

// RegisterRenders registers render-related routes. The agent only runs
// rendererExecutable; a request naming any other executable is rejected.
func RegisterRenders(api huma.API, launcher Launcher, rendererExecutable string) {
	huma.Register(api, huma.Operation{
		OperationID: "launch-render",
		Method:      http.MethodPost,
		Path:        "/api/renders",
		Summary:     "Launch a render job",
		Description: "Starts an external render and returns once the renderer process exists, or runs an internal render to completion. Failures are reported in the body with outcome=failed.",
		Tags:        []string{TagRenders.String()},
	}, func(ctx context.Context, input *LaunchRenderInput) (*LaunchRenderOutput, error) {
		mode, err := qrender.ParseMode(input.Body.Mode)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		exe := rendererExecutable
		if p := input.Body.ExecutablePath; p != "" && filepath.Clean(p) != filepath.Clean(rendererExecutable) {
			return nil, huma.Error400BadRequest("executable_path must be empty or the agent's configured renderer")
		}

		res := launcher.LaunchRenderJob(ctx, qrender.Request{
			DocumentPath:    input.Body.DocumentPath,
			OutputDirectory: input.Body.OutputDirectory,
			ExecutablePath:  exe,
			Mode:            mode,
			Animate:         input.Body.Animate,
			Frame:           input.Body.Frame,
			SceneOutput:     input.Body.SceneOutput,
		})

		return &LaunchRenderOutput{Body: resultToResponse(res)}, nil
	})
}

func resultToResponse(res qrender.Result) schemas.RenderJobResponse {
	n := qrender.Report(res)
	return schemas.RenderJobResponse{
		JobID:     res.JobID,
		Mode:      string(res.Mode),
		Outcome:   string(res.Outcome),
		Kind:      string(res.Kind),
		Message:   res.Message,
		LogPath:   res.LogPath,
		PID:       res.PID,
		StartedAt: res.StartedAt.Format(time.RFC3339),
		Notification: schemas.Notification{
			Severity: string(n.Severity),
			Message:  n.Message,
		},
	}
}
