// Package elfx opens ELF binaries and exposes the pieces the layout
// probe needs: the native pointer width and the DWARF debug data.
package elfx

import (
	"debug/dwarf"
	"debug/elf"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNotELF   = errors.New("elfx: not an ELF file")
	ErrNoDWARF  = errors.New("elfx: no DWARF debug information")
	ErrBadClass = errors.New("elfx: unrecognized ELF class")
)

// File wraps a debug/elf.File opened for layout probing.
type File struct {
	ELF  *elf.File
	path string
	raw  *os.File
}

// Open opens an ELF binary at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elfx: open: %w", err)
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}

	return &File{ELF: ef, path: path, raw: f}, nil
}

// Close releases resources.
func (f *File) Close() error {
	return f.raw.Close()
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// PointerSize returns the native pointer width recorded in the ELF
// ident header: 4 for 32-bit binaries, 8 for 64-bit.
func (f *File) PointerSize() (int, error) {
	switch f.ELF.Class {
	case elf.ELFCLASS32:
		return 4, nil
	case elf.ELFCLASS64:
		return 8, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrBadClass, f.ELF.Class)
}

// DWARF returns the binary's parsed DWARF data.
func (f *File) DWARF() (*dwarf.Data, error) {
	d, err := f.ELF.DWARF()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDWARF, err)
	}
	return d, nil
}
