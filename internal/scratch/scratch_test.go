package scratch

import (
	"os"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	dir, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if _, err := os.Stat(dir.root); err != nil {
		t.Fatalf("scratch root missing after Acquire: %v", err)
	}
	if _, err := os.Stat(dir.Template()); !os.IsNotExist(err) {
		t.Error("Template path should not exist before cloning")
	}

	dir.Release()
	if _, err := os.Stat(dir.root); !os.IsNotExist(err) {
		t.Error("scratch root should be gone after Release")
	}

	// Double release must be harmless.
	dir.Release()
}
