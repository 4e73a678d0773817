package fatkit

// Controller is the capability contract all handles delegate through. It is
// an interface rather than a concrete type so volume, directory and file
// handles work against any implementation, including test doubles and
// decorators such as [ReadOnlyController].
//
// Every operation acquires the controller's exclusivity guard for the
// duration of that single call only. Acquiring an already-held guard fails
// immediately with [ErrControllerInUse]; there is no blocking or retry.
type Controller interface {
	// Volume resolves the volume at ordinal index and returns a handle bound
	// to this controller.
	Volume(index int) (*VolumeHandle, error)

	// Root opens the root directory of the volume. It requires the
	// controller's and the volume's guards simultaneously.
	Root(v *VolumeHandle) (*DirectoryHandle, error)

	// CloseDirectory releases a directory token with the driver. The token
	// is consumed by this call and must not be reused.
	CloseDirectory(v *VolumeHandle, d Directory) error

	// File opens or creates name within d according to mode.
	File(v *VolumeHandle, d Directory, name string, mode Mode) (*FileHandle, error)

	// CloseFile releases a file token with the driver. The token is consumed
	// by this call and must not be reused.
	CloseFile(v *VolumeHandle, f File) error

	// Read fills p from the file's cursor and advances it. It returns the
	// number of bytes read, which may be fewer than len(p).
	Read(v *VolumeHandle, f *File, p []byte) (int, error)

	// Write writes p at the file's cursor, advancing it and growing the
	// file's length as needed. It returns the number of bytes written.
	Write(v *VolumeHandle, f *File, p []byte) (int, error)
}

// DirectoryLister is an optional Controller capability for listing directory
// contents. [DriverController] implements it when its driver implements
// [DirLister].
type DirectoryLister interface {
	ListDirectory(v *VolumeHandle, d Directory) ([]DirEntry, error)
}

// DriverController is the sole exclusivity-guarded access point to a shared
// Driver instance. All handles derived from it share the one driver by
// reference; mutation happens only while the guard is held.
type DriverController struct {
	gd  guard
	drv Driver
}

// NewController wraps drv in a controller. The controller is created once
// around the driver and must outlive every handle derived from it.
func NewController(drv Driver) *DriverController {
	return &DriverController{drv: drv}
}

func (c *DriverController) acquire() error {
	if !c.gd.acquire() {
		return ErrControllerInUse
	}
	return nil
}

// Volume implements Controller.
func (c *DriverController) Volume(index int) (*VolumeHandle, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.gd.release()

	vol, err := c.drv.GetVolume(index)
	if err != nil {
		return nil, err
	}
	return &VolumeHandle{controller: c, vol: vol}, nil
}

// Root implements Controller.
func (c *DriverController) Root(v *VolumeHandle) (*DirectoryHandle, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	dir, err := c.drv.OpenRootDir(vol)
	if err != nil {
		return nil, err
	}
	return &DirectoryHandle{controller: c, volume: v, dir: dir}, nil
}

// CloseDirectory implements Controller.
func (c *DriverController) CloseDirectory(v *VolumeHandle, d Directory) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return err
	}
	defer release()

	return c.drv.CloseDir(vol, d)
}

// File implements Controller.
func (c *DriverController) File(v *VolumeHandle, d Directory, name string, mode Mode) (*FileHandle, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	file, err := c.drv.OpenFileInDir(vol, d, name, mode)
	if err != nil {
		return nil, err
	}
	return &FileHandle{controller: c, volume: v, file: file}, nil
}

// CloseFile implements Controller.
func (c *DriverController) CloseFile(v *VolumeHandle, f File) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return err
	}
	defer release()

	return c.drv.CloseFile(vol, f)
}

// Read implements Controller.
func (c *DriverController) Read(v *VolumeHandle, f *File, p []byte) (int, error) {
	if err := c.acquire(); err != nil {
		return 0, err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()

	return c.drv.Read(vol, f, p)
}

// Write implements Controller.
func (c *DriverController) Write(v *VolumeHandle, f *File, p []byte) (int, error) {
	if err := c.acquire(); err != nil {
		return 0, err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()

	return c.drv.Write(vol, f, p)
}

// ListDirectory implements DirectoryLister when the underlying driver
// supports listing. Drivers that do not implement [DirLister] report
// [ErrNotSupported].
func (c *DriverController) ListDirectory(v *VolumeHandle, d Directory) ([]DirEntry, error) {
	lister, ok := c.drv.(DirLister)
	if !ok {
		return nil, ErrNotSupported
	}

	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.gd.release()

	vol, release, err := v.borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	return lister.ListDir(vol, d)
}

// WriteRootFile opens the volume at index, opens its root directory, opens
// name with mode, and writes data once. Every intermediate handle is
// released before the call returns; release failures go to the diagnostic
// logger, never to the caller.
func WriteRootFile(c Controller, index int, name string, mode Mode, data []byte) (int, error) {
	vol, err := c.Volume(index)
	if err != nil {
		return 0, err
	}

	root, err := vol.Root()
	if err != nil {
		return 0, err
	}
	defer root.Release()

	f, err := root.File(name, mode)
	if err != nil {
		return 0, err
	}
	defer f.Release()

	return f.Write(data)
}

// Ensure DriverController implements the contract and optional capabilities
var (
	_ Controller      = (*DriverController)(nil)
	_ DirectoryLister = (*DriverController)(nil)
)
