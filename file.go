package fatkit

import (
	"errors"
	"io"
	"sync/atomic"
)

// FileHandle is a scoped open-file context with a read/write cursor. Reads
// and writes delegate through the owning volume handle and controller; the
// underlying file token is forwarded to the driver's release operation
// exactly once, when the handle is closed or released.
//
// A file handle must not outlive the volume handle it was derived from.
// FileHandle implements io.Reader and io.Writer.
type FileHandle struct {
	controller Controller
	volume     *VolumeHandle
	file       File
	closed     atomic.Bool
}

// Read fills p from the file's current cursor and advances it. It returns
// the number of bytes read, which may be fewer than len(p), and io.EOF once
// the cursor is at end of file.
func (f *FileHandle) Read(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrHandleClosed
	}
	return f.controller.Read(f.volume, &f.file, p)
}

// Write writes p at the file's current cursor, advancing it and growing the
// file as needed. It returns the number of bytes written.
func (f *FileHandle) Write(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrHandleClosed
	}
	return f.controller.Write(f.volume, &f.file, p)
}

// Size returns the file length as of the most recent open, read or write on
// this handle. It does not query the driver.
func (f *FileHandle) Size() uint32 {
	return f.file.Length
}

// Close releases the file token with the driver and reports the driver's
// result. The token is consumed even when the driver reports a failure. A
// second Close returns [ErrHandleClosed].
func (f *FileHandle) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrHandleClosed
	}
	return f.controller.CloseFile(f.volume, f.file)
}

// Release closes the handle as an end-of-scope side effect, discarding any
// failure after logging it. It is intended for defer and is a no-op after an
// explicit Close. Use Close instead when the caller wants the error.
func (f *FileHandle) Release() {
	err := f.Close()
	if err != nil && !errors.Is(err, ErrHandleClosed) {
		logger().WithError(err).Warn("fatkit: file handle released with close failure")
	}
}

// Ensure FileHandle satisfies the stream interfaces
var (
	_ io.Reader = (*FileHandle)(nil)
	_ io.Writer = (*FileHandle)(nil)
)
