package gitx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFakeCloner_WritesFiles(t *testing.T) {
	cloner := &FakeCloner{Files: map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
	}}
	dir := filepath.Join(t.TempDir(), "snapshot")

	if err := cloner.Clone(context.Background(), "https://example.com/tpl.git", dir); err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	if cloner.ClonedURL != "https://example.com/tpl.git" {
		t.Errorf("ClonedURL = %q", cloner.ClonedURL)
	}
	for _, rel := range []string{"a.txt", "sub/b.txt"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s in snapshot: %v", rel, err)
		}
	}
}

func TestFakeCloner_Err(t *testing.T) {
	wantErr := errors.New("network down")
	cloner := &FakeCloner{Err: wantErr}
	dir := filepath.Join(t.TempDir(), "snapshot")

	err := cloner.Clone(context.Background(), "url", dir)
	if !errors.Is(err, wantErr) {
		t.Errorf("Clone error = %v, want %v", err, wantErr)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("failed clone should not create the snapshot directory")
	}
}
