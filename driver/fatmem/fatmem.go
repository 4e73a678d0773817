package fatmem

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/gobeaver/fatkit"
)

const blockSize = 512

// Driver-level errors. The handle layer passes these through to callers
// unchanged.
var (
	ErrInvalidVolume = errors.New("fatmem: invalid volume index")
	ErrFileNotFound  = errors.New("fatmem: file not found")
	ErrFileExists    = errors.New("fatmem: file already exists")
	ErrInvalidName   = errors.New("fatmem: invalid 8.3 file name")
	ErrBadToken      = errors.New("fatmem: unknown or already released token")
	ErrReadOnlyFile  = errors.New("fatmem: file opened read-only")
	ErrBadMode       = errors.New("fatmem: unsupported open mode")
	ErrDiskFull      = errors.New("fatmem: no free clusters")
)

// Config holds geometry for the in-memory volume set
type Config struct {
	// Volumes is the number of mounted volumes (default 1)
	Volumes int
	// NumBlocks is the block count per volume (default 65536)
	NumBlocks uint32
	// BlocksPerCluster is the cluster size in blocks (default 8)
	BlocksPerCluster uint8
	// TrackFreeClusters controls whether volumes report a free-cluster count
	TrackFreeClusters bool
}

// memFile is a file stored in a volume's root directory
type memFile struct {
	content []byte
}

// memVolume is one in-memory volume; files are keyed by 8.3 short name
type memVolume struct {
	files map[string]*memFile
}

// openFile is the driver-side state behind an open file token
type openFile struct {
	volume int
	name   string
	mode   fatkit.Mode
}

// Adapter provides an in-memory implementation of fatkit.Driver with FAT
// texture: upper-case 8.3 names, cluster accounting, and one root directory
// per volume. Useful for testing and examples.
//
// Open directory and file tokens are tracked by identity, so releasing a
// token twice (or releasing a token that was never issued) is an error.
type Adapter struct {
	mu        sync.Mutex
	cfg       Config
	volumes   []*memVolume
	nextID    uint32
	openDirs  map[uint32]int
	openFiles map[uint32]*openFile
}

// New creates a new in-memory driver
func New(cfg ...Config) *Adapter {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.Volumes <= 0 {
		c.Volumes = 1
	}
	if c.NumBlocks == 0 {
		c.NumBlocks = 65536
	}
	if c.BlocksPerCluster == 0 {
		c.BlocksPerCluster = 8
	}

	a := &Adapter{
		cfg:       c,
		volumes:   make([]*memVolume, c.Volumes),
		openDirs:  make(map[uint32]int),
		openFiles: make(map[uint32]*openFile),
	}
	for i := range a.volumes {
		a.volumes[i] = &memVolume{files: make(map[string]*memFile)}
	}
	return a
}

// GetVolume implements fatkit.Driver
func (a *Adapter) GetVolume(index int) (fatkit.Volume, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.volumes) {
		return fatkit.Volume{}, ErrInvalidVolume
	}

	vol := fatkit.Volume{
		Index:            index,
		NumBlocks:        a.cfg.NumBlocks,
		BlocksPerCluster: a.cfg.BlocksPerCluster,
		ClusterCount:     a.clusterCount(),
	}
	if a.cfg.TrackFreeClusters {
		vol.FreeClusters = a.freeClusters(index)
		vol.FreeClustersKnown = true
	}
	return vol, nil
}

// OpenRootDir implements fatkit.Driver
func (a *Adapter) OpenRootDir(v *fatkit.Volume) (fatkit.Directory, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if v.Index < 0 || v.Index >= len(a.volumes) {
		return fatkit.Directory{}, ErrInvalidVolume
	}

	id := a.allocID()
	a.openDirs[id] = v.Index

	// Cluster 2 is the first data cluster on FAT volumes; the root
	// directory lives there.
	return fatkit.Directory{Volume: v.Index, ID: id, Cluster: 2}, nil
}

// CloseDir implements fatkit.Driver
func (a *Adapter) CloseDir(v *fatkit.Volume, d fatkit.Directory) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.openDirs[d.ID]; !ok {
		return ErrBadToken
	}
	delete(a.openDirs, d.ID)
	return nil
}

// OpenFileInDir implements fatkit.Driver
func (a *Adapter) OpenFileInDir(v *fatkit.Volume, d fatkit.Directory, name string, mode fatkit.Mode) (fatkit.File, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.openDirs[d.ID]; !ok {
		return fatkit.File{}, ErrBadToken
	}

	short, err := shortName(name)
	if err != nil {
		return fatkit.File{}, err
	}

	vol := a.volumes[d.Volume]
	f, exists := vol.files[short]

	switch mode {
	case fatkit.ModeReadOnly, fatkit.ModeReadWriteAppend:
		if !exists {
			return fatkit.File{}, ErrFileNotFound
		}
	case fatkit.ModeReadWriteCreate:
		if exists {
			return fatkit.File{}, ErrFileExists
		}
		f = &memFile{}
		vol.files[short] = f
	case fatkit.ModeReadWriteCreateOrTruncate:
		if !exists {
			f = &memFile{}
			vol.files[short] = f
		}
		f.content = nil
	case fatkit.ModeReadWriteCreateOrAppend:
		if !exists {
			f = &memFile{}
			vol.files[short] = f
		}
	case fatkit.ModeReadWriteTruncate:
		if !exists {
			return fatkit.File{}, ErrFileNotFound
		}
		f.content = nil
	default:
		return fatkit.File{}, ErrBadMode
	}

	length := uint32(len(f.content))
	var offset uint32
	if mode == fatkit.ModeReadWriteAppend || mode == fatkit.ModeReadWriteCreateOrAppend {
		offset = length
	}

	id := a.allocID()
	a.openFiles[id] = &openFile{volume: d.Volume, name: short, mode: mode}
	a.refreshVolume(v, d.Volume)

	return fatkit.File{
		Volume: d.Volume,
		ID:     id,
		Mode:   mode,
		Offset: offset,
		Length: length,
	}, nil
}

// CloseFile implements fatkit.Driver
func (a *Adapter) CloseFile(v *fatkit.Volume, f fatkit.File) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.openFiles[f.ID]; !ok {
		return ErrBadToken
	}
	delete(a.openFiles, f.ID)
	return nil
}

// Read implements fatkit.Driver
func (a *Adapter) Read(v *fatkit.Volume, f *fatkit.File, p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	of, ok := a.openFiles[f.ID]
	if !ok {
		return 0, ErrBadToken
	}

	content := a.volumes[of.volume].files[of.name].content
	f.Length = uint32(len(content))

	if len(p) == 0 {
		return 0, nil
	}
	if f.Offset >= uint32(len(content)) {
		return 0, io.EOF
	}

	n := copy(p, content[f.Offset:])
	f.Offset += uint32(n)
	return n, nil
}

// Write implements fatkit.Driver
func (a *Adapter) Write(v *fatkit.Volume, f *fatkit.File, p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	of, ok := a.openFiles[f.ID]
	if !ok {
		return 0, ErrBadToken
	}
	if of.mode == fatkit.ModeReadOnly {
		return 0, ErrReadOnlyFile
	}

	mf := a.volumes[of.volume].files[of.name]
	end := int(f.Offset) + len(p)

	// Would the grown file still fit in the volume's clusters?
	if end > len(mf.content) {
		used := a.usedClusters(of.volume) - a.clustersFor(len(mf.content))
		if used+a.clustersFor(end) > a.clusterCount() {
			return 0, ErrDiskFull
		}
		grown := make([]byte, end)
		copy(grown, mf.content)
		mf.content = grown
	}

	copy(mf.content[f.Offset:end], p)
	f.Offset = uint32(end)
	f.Length = uint32(len(mf.content))
	a.refreshVolume(v, of.volume)

	return len(p), nil
}

// ListDir implements fatkit.DirLister
func (a *Adapter) ListDir(v *fatkit.Volume, d fatkit.Directory) ([]fatkit.DirEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.openDirs[d.ID]; !ok {
		return nil, ErrBadToken
	}

	vol := a.volumes[d.Volume]
	entries := make([]fatkit.DirEntry, 0, len(vol.files))
	for name, f := range vol.files {
		entries = append(entries, fatkit.DirEntry{
			Name: name,
			Size: uint32(len(f.content)),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// OpenHandles returns the number of directory and file tokens currently
// outstanding. Useful for leak checks in tests.
func (a *Adapter) OpenHandles() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.openDirs) + len(a.openFiles)
}

// allocID issues the next token identity. Must be called with lock held.
func (a *Adapter) allocID() uint32 {
	a.nextID++
	return a.nextID
}

// refreshVolume updates the free-cluster count on the caller's volume
// record. Must be called with lock held.
func (a *Adapter) refreshVolume(v *fatkit.Volume, index int) {
	if v == nil || !a.cfg.TrackFreeClusters {
		return
	}
	v.FreeClusters = a.freeClusters(index)
	v.FreeClustersKnown = true
}

func (a *Adapter) clusterCount() uint32 {
	return a.cfg.NumBlocks / uint32(a.cfg.BlocksPerCluster)
}

func (a *Adapter) clusterBytes() int {
	return int(a.cfg.BlocksPerCluster) * blockSize
}

// clustersFor returns how many clusters a file of size bytes occupies.
func (a *Adapter) clustersFor(size int) uint32 {
	if size == 0 {
		return 0
	}
	cb := a.clusterBytes()
	return uint32((size + cb - 1) / cb)
}

// usedClusters must be called with lock held.
func (a *Adapter) usedClusters(index int) uint32 {
	var used uint32
	for _, f := range a.volumes[index].files {
		used += a.clustersFor(len(f.content))
	}
	return used
}

// freeClusters must be called with lock held.
func (a *Adapter) freeClusters(index int) uint32 {
	total := a.clusterCount()
	used := a.usedClusters(index)
	if used >= total {
		return 0
	}
	return total - used
}

// shortName normalizes name to an upper-case FAT 8.3 short name.
func shortName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", ErrInvalidName
	}

	base, ext := name, ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}
	if base == "" || len(base) > 8 || len(ext) > 3 {
		return "", ErrInvalidName
	}
	for _, r := range base + ext {
		if !validShortNameRune(r) {
			return "", ErrInvalidName
		}
	}

	if ext == "" {
		return base, nil
	}
	return base + "." + ext, nil
}

func validShortNameRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("!#$%&'()-@^_`{}~", r):
		return true
	}
	return false
}

// Ensure Adapter implements the driver interfaces
var (
	_ fatkit.Driver    = (*Adapter)(nil)
	_ fatkit.DirLister = (*Adapter)(nil)
)
