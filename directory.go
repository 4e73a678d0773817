package fatkit

import (
	"errors"
	"sync/atomic"

	"github.com/gobwas/glob"
)

// DirectoryHandle is a scoped open-directory context. It exists to derive
// file handles within the directory; the underlying directory token is
// forwarded to the driver's release operation exactly once, when the handle
// is closed or released.
//
// A directory handle must not outlive the volume handle it was derived from.
type DirectoryHandle struct {
	controller Controller
	volume     *VolumeHandle
	dir        Directory
	closed     atomic.Bool
}

// File opens or creates name inside this directory according to mode. The
// returned handle is scoped to the same volume handle as the directory.
func (d *DirectoryHandle) File(name string, mode Mode) (*FileHandle, error) {
	if d.closed.Load() {
		return nil, ErrHandleClosed
	}
	return d.controller.File(d.volume, d.dir, name, mode)
}

// List returns the directory's entries whose names match pattern, or every
// entry when pattern is empty. Pattern syntax is gobwas/glob ("*.TXT",
// "LOG??.BIN"). Drivers that cannot enumerate directories report
// [ErrNotSupported].
func (d *DirectoryHandle) List(pattern string) ([]DirEntry, error) {
	if d.closed.Load() {
		return nil, ErrHandleClosed
	}

	lister, ok := d.controller.(DirectoryLister)
	if !ok {
		return nil, ErrNotSupported
	}

	entries, err := lister.ListDirectory(d.volume, d.dir)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return entries, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	matched := entries[:0]
	for _, e := range entries {
		if g.Match(e.Name) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Close releases the directory token with the driver and reports the
// driver's result. The token is consumed even when the driver reports a
// failure. A second Close returns [ErrHandleClosed].
func (d *DirectoryHandle) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrHandleClosed
	}
	return d.controller.CloseDirectory(d.volume, d.dir)
}

// Release closes the handle as an end-of-scope side effect, discarding any
// failure after logging it. It is intended for defer and is a no-op after an
// explicit Close. Use Close instead when the caller wants the error.
func (d *DirectoryHandle) Release() {
	err := d.Close()
	if err != nil && !errors.Is(err, ErrHandleClosed) {
		logger().WithError(err).Warn("fatkit: directory handle released with close failure")
	}
}
