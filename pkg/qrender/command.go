package qrender

import "strconv"

// Renderer command-line flags. The renderer applies them in order, so the
// output pattern has to come before the render flag.
const (
	FlagBackground = "-b"
	FlagOutput     = "-o"
	FlagAnimation  = "-a"
	FlagFrame      = "-f"
)

// BuildCommand returns the argument vector for an external render, starting
// with the executable. It does not touch the filesystem.
//
//	<exe> -b <document> [-o <dir>/render_#####] (-a | -f <frame>)
func BuildCommand(v ValidatedRequest) []string {
	args := make([]string, 0, 7)
	args = append(args, v.ExecutablePath, FlagBackground, v.DocumentPath)

	if !v.SceneOutput {
		args = append(args, FlagOutput, v.OutputPattern)
	}

	if v.Animate {
		args = append(args, FlagAnimation)
	} else {
		args = append(args, FlagFrame, strconv.Itoa(v.Frame))
	}
	return args
}
