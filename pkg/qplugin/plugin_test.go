package qplugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quatton/qrender/pkg/qrender"
	"github.com/quatton/qrender/pkg/qrender/qerr"
)

type fakeHost struct {
	state         HostState
	registered    []string
	unregistered  []string
	notifications []qrender.Notification
	failRegister  string
}

func (h *fakeHost) RegisterOperator(op *Operator) error {
	if op.ID == h.failRegister {
		return errors.New("duplicate operator")
	}
	h.registered = append(h.registered, op.ID)
	return nil
}

func (h *fakeHost) UnregisterOperator(id string) error {
	h.unregistered = append(h.unregistered, id)
	return nil
}

func (h *fakeHost) State() HostState { return h.state }

func (h *fakeHost) Notify(n qrender.Notification) {
	h.notifications = append(h.notifications, n)
}

func TestPlugin_Lifecycle(t *testing.T) {
	host := &fakeHost{}
	p := New(qrender.NewLauncher(), Settings{})

	if err := p.Init(context.Background(), host); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	want := []string{OperatorExternalRender, OperatorInternalRender}
	if !reflect.DeepEqual(host.registered, want) {
		t.Errorf("registered %v, want %v", host.registered, want)
	}

	if err := p.Teardown(context.Background(), host); err != nil {
		t.Fatalf("Teardown failed: %v", err)
	}
	reversed := []string{OperatorInternalRender, OperatorExternalRender}
	if !reflect.DeepEqual(host.unregistered, reversed) {
		t.Errorf("unregistered %v, want %v", host.unregistered, reversed)
	}
}

func TestPlugin_InitRollsBack(t *testing.T) {
	host := &fakeHost{failRegister: OperatorInternalRender}
	p := New(qrender.NewLauncher(), Settings{})

	if err := p.Init(context.Background(), host); err == nil {
		t.Fatal("expected Init to fail")
	}
	if !reflect.DeepEqual(host.unregistered, []string{OperatorExternalRender}) {
		t.Errorf("expected rollback of the external operator, got %v", host.unregistered)
	}
}

func TestOperator_ExecuteUnsavedDocument(t *testing.T) {
	host := &fakeHost{}
	p := New(qrender.NewLauncher(), Settings{ExecutablePath: "/usr/bin/renderer"})

	res := p.Operators()[0].Execute(context.Background(), host)
	if res.Kind != qerr.CodeDocumentNotSaved {
		t.Fatalf("expected %s, got %s", qerr.CodeDocumentNotSaved, res.Kind)
	}
	if len(host.notifications) != 1 || host.notifications[0].Severity != qrender.SeverityError {
		t.Errorf("expected one error notification, got %+v", host.notifications)
	}
}

func TestOperator_ExecuteExternal(t *testing.T) {
	tempDir := t.TempDir()
	exe := filepath.Join(tempDir, "renderer")
	os.WriteFile(exe, nil, 0o755)

	host := &fakeHost{state: HostState{DocumentPath: filepath.Join(tempDir, "scene.blend")}}
	var args []string
	launcher := qrender.NewLauncher(qrender.WithProcessSpawner(qrender.SpawnerFunc(
		func(a []string, _ *os.File) (int, error) {
			args = a
			return 7, nil
		})))
	p := New(launcher, Settings{ExecutablePath: exe})

	res := p.Operators()[0].Execute(context.Background(), host)
	if res.Outcome != qrender.OutcomeStarted {
		t.Fatalf("expected status started, got %s (%s)", res.Outcome, res.Message)
	}
	wantLog := filepath.Join(tempDir, "renders", qrender.LogFileName)
	if res.LogPath != wantLog {
		t.Errorf("expected log at %s, got %s", wantLog, res.LogPath)
	}
	if len(host.notifications) != 1 || host.notifications[0].Severity != qrender.SeverityInfo {
		t.Errorf("expected one info notification, got %+v", host.notifications)
	}
	if len(args) == 0 || args[len(args)-1] != "-a" {
		t.Errorf("expected default settings to render all frames, got %v", args)
	}
}

func TestOperator_ExecuteInternalUsesCurrentFrame(t *testing.T) {
	tempDir := t.TempDir()
	var got qrender.RenderSettings
	launcher := qrender.NewLauncher(qrender.WithEmbeddedRenderer(qrender.RendererFunc(
		func(_ context.Context, s qrender.RenderSettings) error {
			got = s
			return nil
		})))

	host := &fakeHost{state: HostState{DocumentPath: filepath.Join(tempDir, "scene.blend"), Frame: 24}}
	p := New(launcher, Settings{OutputDirectory: filepath.Join(tempDir, "out"), SingleFrame: true})

	res := p.Operators()[1].Execute(context.Background(), host)
	if res.Outcome != qrender.OutcomeCompleted {
		t.Fatalf("expected status completed, got %s (%s)", res.Outcome, res.Message)
	}
	if got.Frame != 24 || got.Animate {
		t.Errorf("expected single frame 24, got %+v", got)
	}
}
