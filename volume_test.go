package fatkit

import (
	"testing"
)

func TestVolumeAccessors(t *testing.T) {
	m := newMockDriver()
	c := NewController(m)

	vol, err := c.Volume(0)
	if err != nil {
		t.Fatalf("Volume() error = %v", err)
	}

	if got, err := vol.NumBlocks(); err != nil || got != 2048 {
		t.Errorf("NumBlocks() = %d, %v; want 2048, nil", got, err)
	}
	if got, err := vol.BlocksPerCluster(); err != nil || got != 4 {
		t.Errorf("BlocksPerCluster() = %d, %v; want 4, nil", got, err)
	}
	if got, err := vol.ClusterCount(); err != nil || got != 512 {
		t.Errorf("ClusterCount() = %d, %v; want 512, nil", got, err)
	}
	if got, err := vol.FreeClusters(); err != nil || got != 500 {
		t.Errorf("FreeClusters() = %d, %v; want 500, nil", got, err)
	}
}

func TestFreeClustersUntrackedIsZero(t *testing.T) {
	m := newMockDriver()
	m.freeUnknown = true
	c := NewController(m)

	vol, err := c.Volume(0)
	if err != nil {
		t.Fatalf("Volume() error = %v", err)
	}

	got, err := vol.FreeClusters()
	if err != nil {
		t.Fatalf("FreeClusters() error = %v, want nil for an untracked count", err)
	}
	if got != 0 {
		t.Errorf("FreeClusters() = %d, want 0 when the driver does not track it", got)
	}
}
