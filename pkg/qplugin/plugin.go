// Package qplugin connects the render launcher to a host application's
// extension lifecycle. The host calls Init when the add-on is enabled and
// Teardown when it is disabled; in between, the host invokes the registered
// operators when the user presses a render button.
package qplugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/quatton/qrender/pkg/qrender"
)

// Operator IDs registered with the host.
const (
	OperatorExternalRender = "render.render_all_frames"
	OperatorInternalRender = "render.internal_render_all_frames"
)

// HostState is the part of the host's current state a render needs. It is
// read once per button press.
type HostState struct {
	DocumentPath string // empty when the document was never saved
	Frame        int    // current frame
}

// Host is the host application's extension surface.
type Host interface {
	RegisterOperator(op *Operator) error
	UnregisterOperator(id string) error
	State() HostState
	Notify(n qrender.Notification)
}

// Settings are the add-on preferences applied to every request.
type Settings struct {
	ExecutablePath  string
	OutputDirectory string // empty means renders/ next to the document
	SingleFrame     bool   // render only the host's current frame; the zero value renders all frames
}

// Operator is one render button.
type Operator struct {
	ID          string
	Label       string
	Description string
	Icon        string
	Mode        qrender.Mode

	plugin *Plugin
}

// Execute snapshots host state, launches the render and notifies the host.
func (o *Operator) Execute(ctx context.Context, host Host) qrender.Result {
	req := o.plugin.request(host.State(), o.Mode)
	res := o.plugin.launcher.LaunchRenderJob(ctx, req)
	host.Notify(qrender.Report(res))
	return res
}

// Plugin owns the operators registered with one host.
type Plugin struct {
	launcher  *qrender.Launcher
	settings  Settings
	operators []*Operator
}

func New(launcher *qrender.Launcher, settings Settings) *Plugin {
	p := &Plugin{launcher: launcher, settings: settings}
	p.operators = []*Operator{
		{
			ID:          OperatorExternalRender,
			Label:       "Render All Frames (External)",
			Description: "Render using a separate background renderer process",
			Icon:        "RENDER_STILL",
			Mode:        qrender.ModeExternal,
			plugin:      p,
		},
		{
			ID:          OperatorInternalRender,
			Label:       "Internal Render All Frames",
			Description: "Render inside the running application",
			Icon:        "RENDER_ANIMATION",
			Mode:        qrender.ModeInternal,
			plugin:      p,
		},
	}
	return p
}

// Operators returns the operators in registration order.
func (p *Plugin) Operators() []*Operator {
	return p.operators
}

func (p *Plugin) request(state HostState, mode qrender.Mode) qrender.Request {
	return qrender.Request{
		DocumentPath:    state.DocumentPath,
		OutputDirectory: p.settings.OutputDirectory,
		ExecutablePath:  p.settings.ExecutablePath,
		Mode:            mode,
		Animate:         !p.settings.SingleFrame,
		Frame:           state.Frame,
	}
}

// Init registers every operator. If one fails, the ones already registered
// are removed again.
func (p *Plugin) Init(ctx context.Context, host Host) error {
	for i, op := range p.operators {
		if err := host.RegisterOperator(op); err != nil {
			rollback := p.unregister(host, p.operators[:i])
			return errors.Join(fmt.Errorf("registering %s: %w", op.ID, err), rollback)
		}
	}
	return nil
}

// Teardown unregisters the operators in reverse order.
func (p *Plugin) Teardown(ctx context.Context, host Host) error {
	return p.unregister(host, p.operators)
}

func (p *Plugin) unregister(host Host, ops []*Operator) error {
	var errs []error
	for i := len(ops) - 1; i >= 0; i-- {
		if err := host.UnregisterOperator(ops[i].ID); err != nil {
			errs = append(errs, fmt.Errorf("unregistering %s: %w", ops[i].ID, err))
		}
	}
	return errors.Join(errs...)
}
