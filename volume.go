package fatkit

// VolumeHandle is a scoped, exclusively-borrowable reference to one mounted
// volume's metadata. It is only valid through the Controller that created it
// and must not outlive it. A volume handle holds no driver resource that
// needs explicit release; dropping it is free.
//
// Each accessor acquires the volume's own guard for the duration of the
// call. Reentrant access fails with [ErrVolumeInUse].
type VolumeHandle struct {
	controller Controller
	gd         guard
	vol        Volume
}

// borrow acquires the volume guard and hands out mutable access to the
// volume record for a single call. The returned release func must be called
// before the enclosing operation returns.
func (v *VolumeHandle) borrow() (*Volume, func(), error) {
	if !v.gd.acquire() {
		return nil, nil, ErrVolumeInUse
	}
	return &v.vol, v.gd.release, nil
}

// Root opens the volume's root directory. The returned handle is scoped to
// this volume handle's lifetime.
func (v *VolumeHandle) Root() (*DirectoryHandle, error) {
	return v.controller.Root(v)
}

// NumBlocks returns the total number of blocks on the volume.
func (v *VolumeHandle) NumBlocks() (uint32, error) {
	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()
	return vol.NumBlocks, nil
}

// BlocksPerCluster returns the number of blocks per cluster.
func (v *VolumeHandle) BlocksPerCluster() (uint8, error) {
	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()
	return vol.BlocksPerCluster, nil
}

// ClusterCount returns the number of clusters on the volume.
func (v *VolumeHandle) ClusterCount() (uint32, error) {
	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()
	return vol.ClusterCount, nil
}

// FreeClusters returns the volume's free-cluster count, or 0 when the driver
// does not track it. An untracked count is not an error.
func (v *VolumeHandle) FreeClusters() (uint32, error) {
	vol, release, err := v.borrow()
	if err != nil {
		return 0, err
	}
	defer release()
	if !vol.FreeClustersKnown {
		return 0, nil
	}
	return vol.FreeClusters, nil
}
