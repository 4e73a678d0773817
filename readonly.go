package fatkit

import (
	"errors"
	"fmt"
)

// ErrReadOnly is returned when a write operation is attempted through a
// read-only controller.
var ErrReadOnly = errors.New("controller is read-only")

// ReadOnlyController wraps a Controller to prevent all write operations.
// This is useful for:
// - Providing safe read-only access to volumes that must not change
// - Exposing a controller to untrusted code
// - Testing scenarios where writes should be prevented
//
// File opens are restricted to [ModeReadOnly]; any other mode fails with
// ErrReadOnly before the driver is consulted. Handles created through a
// read-only controller stay bound to it, so writes through them are rejected
// as well.
type ReadOnlyController struct {
	c Controller
}

// NewReadOnlyController wraps c in a read-only view.
func NewReadOnlyController(c Controller) *ReadOnlyController {
	return &ReadOnlyController{c: c}
}

// Volume implements Controller.
func (r *ReadOnlyController) Volume(index int) (*VolumeHandle, error) {
	v, err := r.c.Volume(index)
	if err != nil {
		return nil, err
	}
	// Rebind so later delegation comes back through this decorator.
	v.controller = r
	return v, nil
}

// Root implements Controller.
func (r *ReadOnlyController) Root(v *VolumeHandle) (*DirectoryHandle, error) {
	d, err := r.c.Root(v)
	if err != nil {
		return nil, err
	}
	d.controller = r
	return d, nil
}

// CloseDirectory implements Controller.
func (r *ReadOnlyController) CloseDirectory(v *VolumeHandle, d Directory) error {
	return r.c.CloseDirectory(v, d)
}

// File implements Controller. Modes other than ModeReadOnly are rejected.
func (r *ReadOnlyController) File(v *VolumeHandle, d Directory, name string, mode Mode) (*FileHandle, error) {
	if mode != ModeReadOnly {
		return nil, fmt.Errorf("open %s with mode %s: %w", name, mode, ErrReadOnly)
	}
	f, err := r.c.File(v, d, name, mode)
	if err != nil {
		return nil, err
	}
	f.controller = r
	return f, nil
}

// CloseFile implements Controller.
func (r *ReadOnlyController) CloseFile(v *VolumeHandle, f File) error {
	return r.c.CloseFile(v, f)
}

// Read implements Controller.
func (r *ReadOnlyController) Read(v *VolumeHandle, f *File, p []byte) (int, error) {
	return r.c.Read(v, f, p)
}

// Write implements Controller and always fails.
func (r *ReadOnlyController) Write(v *VolumeHandle, f *File, p []byte) (int, error) {
	return 0, ErrReadOnly
}

// ListDirectory implements DirectoryLister when the wrapped controller does.
func (r *ReadOnlyController) ListDirectory(v *VolumeHandle, d Directory) ([]DirEntry, error) {
	lister, ok := r.c.(DirectoryLister)
	if !ok {
		return nil, ErrNotSupported
	}
	return lister.ListDirectory(v, d)
}

// Ensure ReadOnlyController implements the contract
var (
	_ Controller      = (*ReadOnlyController)(nil)
	_ DirectoryLister = (*ReadOnlyController)(nil)
)
