// Package cache removes stale files that carnival leaves in its cache and log directories.
package cache

import (
	"os"
	"time"

	"github.com/colorcarnival/carnival/filesystem"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// CacheTTL is how long a cache file may stay untouched.
	CacheTTL = 7 * 24 * time.Hour
	// LogsTTL is how long a daily log file is kept.
	LogsTTL = 14 * 24 * time.Hour
)

// Prune deletes the files below dir last modified more than ttl ago and returns how many went.
// Directories are kept.
func Prune(dir string, ttl time.Duration) (removed int, err error) {
	fs := filesystem.API()
	cutoff := time.Now().Add(-ttl)

	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := fs.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return
}

// CollectGarbage prunes the cache and log directories. Failures are logged only.
func CollectGarbage() {
	for dir, ttl := range map[string]time.Duration{
		where.Cache(): CacheTTL,
		where.Logs():  LogsTTL,
	} {
		removed, err := Prune(dir, ttl)
		entry := log.With(logrus.Fields{"dir": dir, "removed": removed})
		if err != nil {
			entry.WithError(err).Warn("pruning stale files")
			continue
		}
		entry.Debug("pruned stale files")
	}
}
