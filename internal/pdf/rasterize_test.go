package pdf

import (
	"context"
	"errors"
	"testing"
)

func TestPoppler_UnavailableBinary(t *testing.T) {
	p := NewPoppler("definitely-not-a-real-binary")

	_, err := p.Pages(context.Background(), "whatever.pdf", 0)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Pages error = %v, want ErrUnavailable", err)
	}
}

func TestNewPoppler_DefaultBinary(t *testing.T) {
	p := NewPoppler("")
	if p.binPath != "pdftoppm" {
		t.Errorf("binPath = %q, want pdftoppm", p.binPath)
	}
}
