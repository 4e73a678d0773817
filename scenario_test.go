package fatkit_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gobeaver/fatkit"
	"github.com/gobeaver/fatkit/driver/fatmem"
)

func TestCreateWriteReopenRead(t *testing.T) {
	drv := fatmem.New()
	c := fatkit.NewController(drv)

	vol, err := c.Volume(0)
	if err != nil {
		t.Fatalf("Volume(0) error = %v", err)
	}
	root, err := vol.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	f, err := root.File("A.TXT", fatkit.ModeReadWriteCreate)
	if err != nil {
		t.Fatalf("File(create) error = %v", err)
	}

	payload := []byte("0123456789")
	n, err := f.Write(payload)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 10 {
		t.Errorf("Write() = %d, want 10", n)
	}
	if f.Size() != 10 {
		t.Errorf("Size() = %d, want 10", f.Size())
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Only the root directory token remains outstanding.
	if got := drv.OpenHandles(); got != 1 {
		t.Errorf("open driver handles after file close = %d, want 1", got)
	}

	f2, err := root.File("A.TXT", fatkit.ModeReadOnly)
	if err != nil {
		t.Fatalf("File(read-only) error = %v", err)
	}
	got, err := io.ReadAll(f2)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back %q, want %q", got, payload)
	}
	f2.Release()
	root.Release()

	if got := drv.OpenHandles(); got != 0 {
		t.Errorf("open driver handles after teardown = %d, want %d", got, 0)
	}
}

func TestWriteRootFileAgainstFatmem(t *testing.T) {
	drv := fatmem.New()
	c := fatkit.NewController(drv)

	data := []byte("boot configuration")
	n, err := fatkit.WriteRootFile(c, 0, "boot.cfg", fatkit.ModeReadWriteCreateOrTruncate, data)
	if err != nil {
		t.Fatalf("WriteRootFile() error = %v", err)
	}
	if n != len(data) {
		t.Errorf("WriteRootFile() = %d, want %d", n, len(data))
	}
	if got := drv.OpenHandles(); got != 0 {
		t.Errorf("open driver handles after WriteRootFile = %d, want 0", got)
	}

	// Names are normalized to upper-case 8.3.
	ok, err := fatkit.VerifyRootFile(c, 0, "BOOT.CFG", digestOf(t, data, fatkit.ChecksumXXHash), fatkit.ChecksumXXHash)
	if err != nil {
		t.Fatalf("VerifyRootFile() error = %v", err)
	}
	if !ok {
		t.Error("VerifyRootFile() = false, want true")
	}
}

func TestDirectoryListGlob(t *testing.T) {
	drv := fatmem.New()
	c := fatkit.NewController(drv)

	for _, name := range []string{"A.TXT", "B.TXT", "C.BIN"} {
		if _, err := fatkit.WriteRootFile(c, 0, name, fatkit.ModeReadWriteCreate, []byte(name)); err != nil {
			t.Fatalf("WriteRootFile(%s) error = %v", name, err)
		}
	}

	vol, err := c.Volume(0)
	if err != nil {
		t.Fatalf("Volume() error = %v", err)
	}
	root, err := vol.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	defer root.Release()

	entries, err := root.List("*.TXT")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List(*.TXT) = %d entries, want 2", len(entries))
	}
	if entries[0].Name != "A.TXT" || entries[1].Name != "B.TXT" {
		t.Errorf("List(*.TXT) = %v, want [A.TXT B.TXT]", entries)
	}

	all, err := root.List("")
	if err != nil {
		t.Fatalf("List(\"\") error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(\"\") = %d entries, want 3", len(all))
	}
}

func TestFreeClustersShrinkOnWrite(t *testing.T) {
	drv := fatmem.New(fatmem.Config{
		NumBlocks:         1024,
		BlocksPerCluster:  2,
		TrackFreeClusters: true,
	})
	c := fatkit.NewController(drv)

	vol, err := c.Volume(0)
	if err != nil {
		t.Fatalf("Volume() error = %v", err)
	}
	before, err := vol.FreeClusters()
	if err != nil {
		t.Fatalf("FreeClusters() error = %v", err)
	}

	root, err := vol.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	defer root.Release()
	f, err := root.File("BIG.BIN", fatkit.ModeReadWriteCreate)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	defer f.Release()

	// 3 clusters worth of data (cluster = 2 blocks * 512 bytes).
	if _, err := f.Write(make([]byte, 3*2*512)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	after, err := vol.FreeClusters()
	if err != nil {
		t.Fatalf("FreeClusters() error = %v", err)
	}
	if after != before-3 {
		t.Errorf("FreeClusters() after write = %d, want %d", after, before-3)
	}
}

func TestVolumeIndexOutOfRange(t *testing.T) {
	c := fatkit.NewController(fatmem.New())

	_, err := c.Volume(1)
	if !errors.Is(err, fatmem.ErrInvalidVolume) {
		t.Errorf("Volume(1) error = %v, want fatmem.ErrInvalidVolume unchanged", err)
	}
}

func digestOf(t *testing.T, data []byte, algo fatkit.ChecksumAlgorithm) string {
	t.Helper()
	h, err := fatkit.NewHasher(algo)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	h.Write(data)
	return hexString(h.Sum(nil))
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0x0f])
	}
	return string(out)
}
