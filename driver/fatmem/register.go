package fatmem

import "github.com/gobeaver/fatkit"

func init() {
	fatkit.RegisterDriver("fatmem", func(cfg *fatkit.Config) (fatkit.Driver, error) {
		return New(Config{
			Volumes:           cfg.FatMemVolumes,
			NumBlocks:         uint32(cfg.FatMemNumBlocks),
			BlocksPerCluster:  uint8(cfg.FatMemBlocksPerCluster),
			TrackFreeClusters: cfg.FatMemTrackFreeClusters,
		}), nil
	})
}
