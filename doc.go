// Package fatkit provides a scoped handle layer for stateful block-device
// filesystem drivers (FAT-style volumes with directory and file tokens that
// require explicit release).
//
// A driver owns all raw filesystem state and is not assumed to tolerate
// reentrant or aliased access. FatKit wraps it once in a controller and hands
// out a strict hierarchy of handles: controller → volume → directory/file.
// The hierarchy enforces three things:
//
//   - at most one call path mutates the driver at any instant, via a
//     non-blocking exclusivity guard that fails fast with [ErrControllerInUse]
//     or [ErrVolumeInUse] instead of deadlocking
//   - a child handle never outlives its parent (volume ⊆ controller,
//     directory/file ⊆ volume)
//   - every directory and file token reaches the driver's release operation
//     exactly once, on every exit path
//
// # Basic Usage
//
//	import "github.com/gobeaver/fatkit/driver/fatmem"
//
//	c := fatkit.NewController(fatmem.New())
//
//	vol, err := c.Volume(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, err := vol.Root()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer root.Release()
//
//	f, err := root.File("HELLO.TXT", fatkit.ModeReadWriteCreate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Release()
//
//	n, err := f.Write([]byte("Hello, World!"))
//
// # Handle Teardown
//
// Directory and file handles carry a driver token that must be released
// exactly once. Each handle offers two paths:
//
//   - Close() error: explicit release; the driver's failure, if any, is
//     returned to the caller.
//   - Release(): end-of-scope release for defer; a failure is logged through
//     the package logger (see [SetLogger]) and discarded, because a deferred
//     teardown has no caller to report to.
//
// Both paths consume the token; whichever runs second is a no-op.
//
// # Exclusivity Guards
//
// Guards are try-locks held for the duration of a single call, never across
// calls. They exist to defend against aliasing, that is, calling back into a
// controller or volume from within one of its own operations, which the
// driver cannot survive. Contention is an error, not a wait:
//
//	if fatkit.IsInUse(err) {
//	    // a reentrant call was rejected
//	}
//
// # Composite Operations
//
// [WriteRootFile] opens a volume, its root directory, and a file, writes
// once, and releases every intermediate handle before returning:
//
//	n, err := fatkit.WriteRootFile(c, 0, "BOOT.CFG",
//	    fatkit.ModeReadWriteCreateOrTruncate, data)
//
// # Optional Capabilities
//
// Drivers may implement optional capability interfaces. Use type assertions
// to check for support:
//
//	if lister, ok := drv.(fatkit.DirLister); ok {
//	    entries, err := lister.ListDir(vol, dir)
//	}
//
// [DirectoryHandle.List] builds on this to glob-filter directory entries.
//
// # Configuration
//
// FatKit can be configured via BEAVER_FATKIT_* environment variables, or
// programmatically via the [Config] struct:
//
//	cfg := fatkit.Config{
//	    Driver:        "fatmem",
//	    FatMemVolumes: 2,
//	}
//	c, err := fatkit.New(&cfg)
package fatkit
