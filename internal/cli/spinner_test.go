package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStops(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
		stop bool
	}{
		{
			name: "stopped",
			ctx:  func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			stop: true,
		},
		{
			name: "parent canceled",
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
		},
		{
			name: "parent timed out",
			ctx:  func() (context.Context, context.CancelFunc) { return context.WithTimeout(context.Background(), 20*time.Millisecond) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Rendering...")
			s.out = &bytes.Buffer{}
			s.Start()
			if tt.stop {
				s.Stop()
			}
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner still running")
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithError("Failed")
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Rendering 0/12...")
	s.SetMessage("Rendering 3/12...")
	s.SetMessage("Done")

	got := s.line()
	if !strings.HasPrefix(got, "Done") {
		t.Errorf("line = %q", got)
	}
	if len(got) != len("Rendering 3/12...") {
		t.Errorf("shorter message should cover the old one, got %q", got)
	}

	var out bytes.Buffer
	s.out = &out
	s.Start()
	s.Stop()
	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("stop should leave the cursor at a cleared line, got %q", out.String())
	}
}
