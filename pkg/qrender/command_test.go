package qrender

import (
	"reflect"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	base := ValidatedRequest{
		DocumentPath:    "/proj/scene.blend",
		OutputDirectory: "/proj/renders",
		OutputPattern:   "/proj/renders/render_#####",
		ExecutablePath:  "/usr/bin/renderer",
		Mode:            ModeExternal,
	}

	tests := []struct {
		name   string
		modify func(v *ValidatedRequest)
		want   []string
	}{
		{
			name:   "animation",
			modify: func(v *ValidatedRequest) { v.Animate = true },
			want:   []string{"/usr/bin/renderer", "-b", "/proj/scene.blend", "-o", "/proj/renders/render_#####", "-a"},
		},
		{
			name:   "single frame",
			modify: func(v *ValidatedRequest) { v.Frame = 12 },
			want:   []string{"/usr/bin/renderer", "-b", "/proj/scene.blend", "-o", "/proj/renders/render_#####", "-f", "12"},
		},
		{
			name: "scene output",
			modify: func(v *ValidatedRequest) {
				v.Animate = true
				v.SceneOutput = true
			},
			want: []string{"/usr/bin/renderer", "-b", "/proj/scene.blend", "-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.modify(&v)
			if got := BuildCommand(v); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildCommand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildCommand_Deterministic(t *testing.T) {
	v := ValidatedRequest{
		DocumentPath:   "/proj/scene.blend",
		OutputPattern:  "/proj/renders/render_#####",
		ExecutablePath: "/usr/bin/renderer",
		Animate:        true,
	}

	first := BuildCommand(v)
	second := BuildCommand(v)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical vectors, got %v and %v", first, second)
	}

	// Mutating one result must not leak into the next call.
	first[0] = "changed"
	if BuildCommand(v)[0] != "/usr/bin/renderer" {
		t.Error("BuildCommand shares state between calls")
	}
}
