// Package storage mounts the littlefs filesystem the configuration record
// lives on.
package storage

import (
	"fmt"
	"log/slog"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

// Mount mounts littlefs on dev, formatting the device first if it does not
// hold a valid filesystem yet. A device that cannot be mounted even after a
// format is a boot failure.
func Mount(dev tinyfs.BlockDevice, logger *slog.Logger) (*littlefs.LFS, error) {
	lfs := littlefs.New(dev)
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 512,
		BlockCycles:   100,
	})

	if err := lfs.Mount(); err != nil {
		logger.Warn("storage: mount failed, formatting", "err", err)
		if err := lfs.Format(); err != nil {
			return nil, fmt.Errorf("storage: format: %w", err)
		}
		if err := lfs.Mount(); err != nil {
			return nil, fmt.Errorf("storage: mount after format: %w", err)
		}
	}
	return lfs, nil
}
