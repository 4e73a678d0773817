package fatkit

// Mode controls how a file is opened within a directory. The semantics are
// owned by the driver; the handle layer forwards modes opaquely.
type Mode int

const (
	// ModeReadOnly opens an existing file for reading only.
	ModeReadOnly Mode = iota
	// ModeReadWriteAppend opens an existing file with the cursor at the end.
	ModeReadWriteAppend
	// ModeReadWriteCreate creates a new file, failing if it already exists.
	ModeReadWriteCreate
	// ModeReadWriteCreateOrTruncate creates the file or truncates an
	// existing one to zero length.
	ModeReadWriteCreateOrTruncate
	// ModeReadWriteCreateOrAppend creates the file or opens an existing one
	// with the cursor at the end.
	ModeReadWriteCreateOrAppend
	// ModeReadWriteTruncate truncates an existing file, failing if it does
	// not exist.
	ModeReadWriteTruncate
)

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeReadOnly:
		return "read-only"
	case ModeReadWriteAppend:
		return "read-write-append"
	case ModeReadWriteCreate:
		return "read-write-create"
	case ModeReadWriteCreateOrTruncate:
		return "read-write-create-or-truncate"
	case ModeReadWriteCreateOrAppend:
		return "read-write-create-or-append"
	case ModeReadWriteTruncate:
		return "read-write-truncate"
	default:
		return "unknown"
	}
}

// Volume describes one mounted logical volume. Drivers fill it in when the
// volume is resolved and may update FreeClusters as writes allocate space.
// Index is the ordinal assigned at mount time.
type Volume struct {
	Index             int
	NumBlocks         uint32
	BlocksPerCluster  uint8
	ClusterCount      uint32
	FreeClusters      uint32
	FreeClustersKnown bool
}

// Directory is a driver token for an open directory traversal context.
// Drivers assign the fields; the handle layer never interprets them and
// forwards the token to CloseDir exactly once.
type Directory struct {
	Volume  int
	ID      uint32
	Cluster uint32
}

// File is a driver token for an open file. Offset is the read/write cursor
// and Length the cached file length; the driver advances both as a side
// effect of Read and Write.
type File struct {
	Volume int
	ID     uint32
	Mode   Mode
	Offset uint32
	Length uint32
}

// DirEntry describes one entry of a directory listing.
type DirEntry struct {
	Name string
	Size uint32
}

// Driver is the stateful filesystem driver the handle layer wraps. A driver
// owns block I/O and on-disk structure parsing; it is not assumed to
// tolerate reentrant calls, which is why every call into it goes through the
// controller's exclusivity guard.
//
// Driver errors are passed through to callers unchanged. Read must return
// io.EOF once the cursor is at end of file.
type Driver interface {
	// GetVolume resolves the volume at ordinal index.
	GetVolume(index int) (Volume, error)

	// OpenRootDir opens the root directory of v.
	OpenRootDir(v *Volume) (Directory, error)

	// CloseDir releases a directory token. The token is consumed whether or
	// not an error is reported.
	CloseDir(v *Volume, d Directory) error

	// OpenFileInDir opens or creates name inside d according to mode.
	OpenFileInDir(v *Volume, d Directory, name string, mode Mode) (File, error)

	// CloseFile releases a file token. The token is consumed whether or not
	// an error is reported.
	CloseFile(v *Volume, f File) error

	// Read fills p from the file's cursor, advancing it. It returns the
	// number of bytes read, which may be fewer than len(p), and io.EOF once
	// the cursor is at end of file.
	Read(v *Volume, f *File, p []byte) (int, error)

	// Write writes p at the file's cursor, advancing it and growing the
	// file's length as needed.
	Write(v *Volume, f *File, p []byte) (int, error)
}

// DirLister is an optional driver capability for listing directory contents.
// Check for support with a type assertion:
//
//	if lister, ok := drv.(fatkit.DirLister); ok {
//	    entries, err := lister.ListDir(vol, dir)
//	}
type DirLister interface {
	ListDir(v *Volume, d Directory) ([]DirEntry, error)
}
