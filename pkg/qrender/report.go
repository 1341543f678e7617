package qrender

import (
	"fmt"
	"strings"
)

// Severity of a caller-visible notification
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a display-ready message for the caller's UI.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(n.Severity)), n.Message)
}

// Report maps a Result to a Notification. It only formats.
func Report(r Result) Notification {
	switch r.Outcome {
	case OutcomeStarted:
		msg := r.Message
		if msg == "" {
			msg = "Rendering started."
		}
		if r.LogPath != "" && !strings.Contains(msg, r.LogPath) {
			msg = fmt.Sprintf("%s Logs at %s", msg, r.LogPath)
		}
		return Notification{Severity: SeverityInfo, Message: msg}
	case OutcomeCompleted:
		msg := r.Message
		if msg == "" {
			msg = "Rendering finished."
		}
		return Notification{Severity: SeverityInfo, Message: msg}
	case OutcomeFailed:
		msg := r.Message
		if msg == "" {
			msg = "render failed"
		}
		if r.Kind != "" {
			msg = fmt.Sprintf("%s (%s)", msg, r.Kind)
		}
		return Notification{Severity: SeverityError, Message: msg}
	default:
		return Notification{Severity: SeverityError, Message: fmt.Sprintf("unknown render outcome %q", r.Outcome)}
	}
}
