package darwin

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mj1618/win-ctrl/internal/platform"
)

type recordingExecutor struct {
	name   string
	args   []string
	result platform.Result
	err    error
}

func (r *recordingExecutor) Run(_ context.Context, name string, args ...string) (platform.Result, error) {
	r.name = name
	r.args = args
	return r.result, r.err
}

func TestCaptureWindowArgs(t *testing.T) {
	tests := []struct {
		name string
		opts platform.ScreenshotOptions
		want []string
	}{
		{
			name: "png default",
			opts: platform.ScreenshotOptions{WindowID: 42, OutputPath: "/tmp/a.png"},
			want: []string{"-l", "42", "-t", "png", "/tmp/a.png"},
		},
		{
			name: "jpg without shadow",
			opts: platform.ScreenshotOptions{WindowID: 7, Format: platform.FormatJPG, NoShadow: true, OutputPath: "/tmp/b.jpg"},
			want: []string{"-l", "7", "-t", "jpg", "-o", "/tmp/b.jpg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecutor{}
			s := NewScreenshotter(exec, "")
			if err := s.CaptureWindow(context.Background(), tt.opts); err != nil {
				t.Fatalf("CaptureWindow: %v", err)
			}
			if exec.name != DefaultScreencaptureBin {
				t.Errorf("binary = %q, want %q", exec.name, DefaultScreencaptureBin)
			}
			if !reflect.DeepEqual(exec.args, tt.want) {
				t.Errorf("args = %v, want %v", exec.args, tt.want)
			}
		})
	}
}

func TestCaptureWindowRejectsZeroID(t *testing.T) {
	s := NewScreenshotter(&recordingExecutor{}, "")
	if err := s.CaptureWindow(context.Background(), platform.ScreenshotOptions{}); err == nil {
		t.Fatal("expected error for window id 0")
	}
}

func TestCaptureDisplayArgs(t *testing.T) {
	exec := &recordingExecutor{}
	s := NewScreenshotter(exec, "/usr/sbin/screencapture")
	err := s.CaptureDisplay(context.Background(), platform.ScreenshotOptions{
		DisplayIndex: 2, Format: platform.FormatTIFF, OutputPath: "/tmp/d.tiff",
	})
	if err != nil {
		t.Fatalf("CaptureDisplay: %v", err)
	}
	want := []string{"-D", "2", "-t", "tiff", "/tmp/d.tiff"}
	if exec.name != "/usr/sbin/screencapture" || !reflect.DeepEqual(exec.args, want) {
		t.Errorf("got %s %v, want %v", exec.name, exec.args, want)
	}
}

func TestCaptureNonZeroExit(t *testing.T) {
	exec := &recordingExecutor{result: platform.Result{ExitCode: 1, Stderr: "could not create image from window"}}
	s := NewScreenshotter(exec, "")
	err := s.CaptureWindow(context.Background(), platform.ScreenshotOptions{WindowID: 1, OutputPath: "/tmp/x.png"})

	var exitErr *platform.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *platform.ExitError, got %T (%v)", err, err)
	}
	if exitErr.Code != 1 || exitErr.Stderr != "could not create image from window" {
		t.Errorf("unexpected exit error: %+v", exitErr)
	}
}

func TestCaptureStartFailure(t *testing.T) {
	cause := errors.New("boom")
	s := NewScreenshotter(&recordingExecutor{err: cause}, "")
	err := s.CaptureDisplay(context.Background(), platform.ScreenshotOptions{OutputPath: "/tmp/x.png"})
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
