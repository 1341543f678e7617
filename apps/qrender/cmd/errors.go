package cmd

import (
	"errors"

	"github.com/quatton/qrender/pkg/qrender"
	"github.com/quatton/qrender/pkg/qrender/qerr"
)

// errFailed is returned from RunE after the failure was already printed.
var errFailed = errors.New("render failed")

// hintFor suggests how to fix a failed launch. Empty when there is nothing
// more to say than the message.
func hintFor(res qrender.Result) string {
	switch res.Kind {
	case qerr.CodeDocumentNotSaved:
		return "save the document and pass its path: qrender render <document>"
	case qerr.CodeExecutableNotFound:
		return "set 'executable' in qrender.yaml, QRENDER_EXECUTABLE, or pass --executable"
	case qerr.CodeLaunchFailure:
		return "check that the renderer is executable; retry with the same command"
	case qerr.CodeOutputUnavailable:
		return "check that the output directory is writable or pass --output"
	default:
		return ""
	}
}
