package fatkit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default driver to use (fatmem)
	Driver string `env:"FATKIT_DRIVER,default:fatmem"`

	// Wrap the controller in a read-only view
	ReadOnly bool `env:"FATKIT_READ_ONLY,default:false"`

	// fatmem driver configuration
	FatMemVolumes           int  `env:"FATKIT_FATMEM_VOLUMES,default:1"`
	FatMemNumBlocks         int  `env:"FATKIT_FATMEM_NUM_BLOCKS,default:65536"`
	FatMemBlocksPerCluster  int  `env:"FATKIT_FATMEM_BLOCKS_PER_CLUSTER,default:8"`
	FatMemTrackFreeClusters bool `env:"FATKIT_FATMEM_TRACK_FREE_CLUSTERS,default:true"`

	// Logging
	LogLevel string `env:"FATKIT_LOG_LEVEL,default:info"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
