package fatkit

import (
	"os"
	"testing"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				Driver:                  "fatmem",
				FatMemVolumes:           1,
				FatMemNumBlocks:         65536,
				FatMemBlocksPerCluster:  8,
				FatMemTrackFreeClusters: true,
				LogLevel:                "info",
			},
		},
		{
			name: "fatmem geometry overrides",
			envVars: map[string]string{
				"BEAVER_FATKIT_FATMEM_VOLUMES":             "4",
				"BEAVER_FATKIT_FATMEM_NUM_BLOCKS":          "8192",
				"BEAVER_FATKIT_FATMEM_BLOCKS_PER_CLUSTER":  "16",
				"BEAVER_FATKIT_FATMEM_TRACK_FREE_CLUSTERS": "false",
			},
			want: Config{
				Driver:                 "fatmem",
				FatMemVolumes:          4,
				FatMemNumBlocks:        8192,
				FatMemBlocksPerCluster: 16,
				LogLevel:               "info",
			},
		},
		{
			name: "read-only controller with custom driver",
			envVars: map[string]string{
				"BEAVER_FATKIT_DRIVER":    "sdcard",
				"BEAVER_FATKIT_READ_ONLY": "true",
				"BEAVER_FATKIT_LOG_LEVEL": "debug",
			},
			want: Config{
				Driver:                  "sdcard",
				ReadOnly:                true,
				FatMemVolumes:           1,
				FatMemNumBlocks:         65536,
				FatMemBlocksPerCluster:  8,
				FatMemTrackFreeClusters: true,
				LogLevel:                "debug",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set environment variables
			for k, v := range tt.envVars {
				k := k // capture for closure
				os.Setenv(k, v)
				t.Cleanup(func() { os.Unsetenv(k) })
			}

			cfg, err := GetConfig()
			if err != nil {
				t.Fatalf("GetConfig() error = %v", err)
			}

			if cfg.Driver != tt.want.Driver {
				t.Errorf("Driver = %v, want %v", cfg.Driver, tt.want.Driver)
			}
			if cfg.ReadOnly != tt.want.ReadOnly {
				t.Errorf("ReadOnly = %v, want %v", cfg.ReadOnly, tt.want.ReadOnly)
			}
			if cfg.FatMemVolumes != tt.want.FatMemVolumes {
				t.Errorf("FatMemVolumes = %v, want %v", cfg.FatMemVolumes, tt.want.FatMemVolumes)
			}
			if cfg.FatMemNumBlocks != tt.want.FatMemNumBlocks {
				t.Errorf("FatMemNumBlocks = %v, want %v", cfg.FatMemNumBlocks, tt.want.FatMemNumBlocks)
			}
			if cfg.FatMemBlocksPerCluster != tt.want.FatMemBlocksPerCluster {
				t.Errorf("FatMemBlocksPerCluster = %v, want %v", cfg.FatMemBlocksPerCluster, tt.want.FatMemBlocksPerCluster)
			}
			if cfg.FatMemTrackFreeClusters != tt.want.FatMemTrackFreeClusters {
				t.Errorf("FatMemTrackFreeClusters = %v, want %v", cfg.FatMemTrackFreeClusters, tt.want.FatMemTrackFreeClusters)
			}
			if cfg.LogLevel != tt.want.LogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.want.LogLevel)
			}
		})
	}
}
