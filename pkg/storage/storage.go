// Package storage stores uploaded car images and generated contract PDFs
// on one of two disks: the local filesystem (default) or S3-compatible
// object storage, selected by STORAGE_DISK.
package storage

import (
	"fmt"
	"sync"

	"github.com/shashiranjanraj/drivehub/config"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
)

// Disk reads and writes files under slash-separated keys.
type Disk interface {
	Put(path string, content []byte) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	// URL returns the public URL clients use to fetch path.
	URL(path string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the configured disks. Call once at startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	disks["local"] = newLocalDisk()
	if config.StorageS3Bucket() != "" {
		if d, err := newS3Disk(); err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	defaultDisk = config.StorageDisk()
	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: configured disk unavailable, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns a named disk and panics when it is not configured, which is
// a boot-order bug rather than a runtime condition.
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk installs a custom disk, used by tests.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// SetDefault retargets the package-level helpers.
func SetDefault(name string) {
	mu.Lock()
	defaultDisk = name
	mu.Unlock()
}

func active() Disk {
	mu.RLock()
	name := defaultDisk
	mu.RUnlock()
	return Use(name)
}

func Put(path string, content []byte) error { return active().Put(path, content) }
func Get(path string) ([]byte, error)       { return active().Get(path) }
func Exists(path string) bool               { return active().Exists(path) }
func Delete(path string) error              { return active().Delete(path) }
func URL(path string) string                { return active().URL(path) }
