package elfx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestOpenNotELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-elf")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho hello\n"), 0755); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrNotELF) {
		t.Fatalf("err = %v, want ErrNotELF", err)
	}
}

// The test binary itself serves as the ELF sample on Linux.
func TestOpenSelf(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("no executable path: %v", err)
	}
	f, err := Open(exe)
	if err != nil {
		t.Skipf("test binary is not ELF on this platform: %v", err)
	}
	defer f.Close()

	if f.Path() != exe {
		t.Errorf("Path() = %q, want %q", f.Path(), exe)
	}
	ps, err := f.PointerSize()
	if err != nil {
		t.Fatal(err)
	}
	if ps != 4 && ps != 8 {
		t.Errorf("PointerSize() = %d", ps)
	}
}
