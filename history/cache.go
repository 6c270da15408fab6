package history

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// CacheEntry represents a cached history lookup with metadata
type CacheEntry struct {
	Year      int
	Timestamp time.Time
	Key       string
}

// FileCache stores one gob-encoded entry per file in a directory
type FileCache struct {
	cacheDir string
	mutex    sync.RWMutex
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheManager caches earliest-commit years. Keys embed the HEAD commit hash, so
// a new commit never serves stale entries.
type CacheManager struct {
	fileCache *FileCache
	stats     *CacheStats
}

// DefaultCacheDir returns the per-user cache directory for history lookups.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "copyright-hooks", "history"), nil
}

// NewCacheManager creates a new cache manager instance
// If cacheDir is empty, DefaultCacheDir is used
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	if cacheDir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &CacheManager{
		fileCache: &FileCache{cacheDir: cacheDir},
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}, nil
}

// Dir returns the directory holding cache files.
func (cm *CacheManager) Dir() string {
	return cm.fileCache.cacheDir
}

// generateCacheKey creates a unique cache file name for a key
func (fc *FileCache) generateCacheKey(key string) string {
	return fmt.Sprintf("%016x.cache", xxh3.HashString(key))
}

func (fc *FileCache) getCachePath(key string) string {
	return filepath.Join(fc.cacheDir, fc.generateCacheKey(key))
}

// Get retrieves an entry, returning false if it is missing or unreadable
func (fc *FileCache) Get(key string) (*CacheEntry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()

	data, err := os.ReadFile(fc.getCachePath(key))
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, false
	}

	// Guard against xxh3 collisions
	if entry.Key != key {
		return nil, false
	}
	return &entry, true
}

// Set stores an entry
func (fc *FileCache) Set(key string, entry CacheEntry) error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(fc.getCachePath(key), buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// GetEarliestYear retrieves a cached earliest-commit year
func (cm *CacheManager) GetEarliestYear(key string) (int, bool) {
	entry, found := cm.fileCache.Get(key)
	if !found {
		cm.recordCacheMiss()
		return 0, false
	}
	cm.recordCacheHit()
	return entry.Year, true
}

// SetEarliestYear stores an earliest-commit year
func (cm *CacheManager) SetEarliestYear(key string, year int) error {
	return cm.fileCache.Set(key, CacheEntry{
		Year:      year,
		Timestamp: time.Now(),
		Key:       key,
	})
}

// GetCacheStats returns storage statistics
func (cm *CacheManager) GetCacheStats() (map[string]interface{}, error) {
	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var count int
	var totalSize int64
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		count++
		totalSize += info.Size()
	}

	return map[string]interface{}{
		"cache_dir":   cm.fileCache.cacheDir,
		"cache_files": count,
		"total_size":  totalSize,
	}, nil
}

// CleanExpiredCache removes cache entries older than maxAge and returns how many were removed
func (cm *CacheManager) CleanExpiredCache(maxAge time.Duration) (int, error) {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		cachePath := filepath.Join(cm.fileCache.cacheDir, file.Name())
		data, err := os.ReadFile(cachePath)
		if err != nil {
			continue
		}

		var entry CacheEntry
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
			// Unreadable entries are never served, drop them too
			if os.Remove(cachePath) == nil {
				removed++
			}
			continue
		}

		if entry.Timestamp.Before(cutoff) {
			if os.Remove(cachePath) == nil {
				removed++
			}
		}
	}

	return removed, nil
}

// ClearCache completely removes all cache entries
func (cm *CacheManager) ClearCache() error {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(cm.fileCache.cacheDir, file.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete cache file: %w", err)
		}
	}

	cm.ResetPerformanceStats()
	return nil
}
