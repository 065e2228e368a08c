package ptr_test

import (
	"testing"

	"github.com/tkoskela/fitplan/internal/ptr"
)

func TestRef(t *testing.T) {
	s := "test"
	p := ptr.Ref(s)
	if p == nil {
		t.Fatal("expected pointer to be non-nil")
	}
	if *p != s {
		t.Errorf("expected %q, got %q", s, *p)
	}

	// Modifying the original must not affect the pointee.
	s = "modified"
	if *p == s {
		t.Error("pointer value should not change when original value is modified")
	}
}
