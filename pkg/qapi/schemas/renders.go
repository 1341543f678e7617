package schemas

// RenderJobRequest represents a request to launch a render job
type RenderJobRequest struct {
	DocumentPath    string `json:"document_path" doc:"Absolute path of the saved document; empty means unsaved"`
	OutputDirectory string `json:"output_directory,omitempty" doc:"Directory for frames and the render log. Defaults to renders/ next to the document"`
	ExecutablePath  string `json:"executable_path,omitempty" doc:"Must be empty or equal to the agent's configured renderer"`
	Mode            string `json:"mode,omitempty" enum:"external,internal" default:"external" doc:"external spawns a detached renderer, internal blocks until the render is done"`
	Animate         bool   `json:"animate,omitempty" default:"true" doc:"Render the whole animation instead of a single frame"`
	Frame           int    `json:"frame,omitempty" doc:"Frame to render when animate is false"`
	SceneOutput     bool   `json:"scene_output,omitempty" doc:"Keep the document's own output path instead of render_#####"`
}

// Notification is the display-ready summary of a result
type Notification struct {
	Severity string `json:"severity" enum:"info,error" doc:"Severity"`
	Message  string `json:"message" doc:"Display message"`
}

// RenderJobResponse represents the outcome of one launch attempt
type RenderJobResponse struct {
	JobID        string       `json:"job_id" doc:"Launch ID"`
	Mode         string       `json:"mode" doc:"Render mode"`
	Outcome      string       `json:"outcome" enum:"started,completed,failed" doc:"started for spawned external renders, completed or failed otherwise"`
	Kind         string       `json:"kind,omitempty" doc:"Failure kind"`
	Message      string       `json:"message" doc:"Diagnostic message"`
	LogPath      string       `json:"log_path,omitempty" doc:"Render log of an external render"`
	PID          int          `json:"pid,omitempty" doc:"Process ID of an external render"`
	StartedAt    string       `json:"started_at" doc:"Launch timestamp"`
	Notification Notification `json:"notification" doc:"Display-ready notification"`
}
