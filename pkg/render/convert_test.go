package render

import (
	"context"
	"testing"

	"github.com/matzehuels/prism/pkg/errors"
)

func TestConvertWithoutRsvg(t *testing.T) {
	orig := rsvgBinary
	rsvgBinary = "prism-test-no-such-binary"
	defer func() { rsvgBinary = orig }()

	if Available() {
		t.Fatal("Available() should be false for a missing binary")
	}

	ctx := context.Background()
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`)

	if _, err := ToPDF(ctx, svg); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(ctx, svg, 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}
