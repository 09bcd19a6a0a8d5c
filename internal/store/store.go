package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/photodeck/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPages  = []byte("pages")
	bucketAlbums = []byte("albums")
)

var allBuckets = [][]byte{bucketPages, bucketAlbums}

// PhotoStore implements domain.Store using BoltDB.
type PhotoStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewPhotoStore opens (or creates) the cache for one source. An empty
// baseCacheDir gives a memory-only store.
func NewPhotoStore(baseCacheDir, sourceURL string) (*PhotoStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &PhotoStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if sourceURL != "" {
		dir = filepath.Join(baseCacheDir, hashSourceURL(sourceURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "photodeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PhotoStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashSourceURL(sourceURL string) string {
	normalized := strings.TrimRight(strings.ToLower(sourceURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PhotoStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *PhotoStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PhotoStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *PhotoStore) deletePrefix(bucket []byte, prefix string) {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Collect first: deleting under a live cursor skips keys in bbolt
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		var keys [][]byte
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Pages (hierarchical key: album:{id|all}:page:{n}:limit:{l}) ===

func albumPrefix(albumID int) string {
	if albumID <= 0 {
		return "album:all:"
	}
	return fmt.Sprintf("album:%d:", albumID)
}

func pageKey(albumID, page, limit int) string {
	return fmt.Sprintf("%spage:%d:limit:%d", albumPrefix(albumID), page, limit)
}

func (s *PhotoStore) GetPage(albumID, page, limit int) (domain.CachedPage, bool) {
	var p domain.CachedPage
	ok := s.get(bucketPages, pageKey(albumID, page, limit), &p)
	return p, ok
}

func (s *PhotoStore) SavePage(albumID, page, limit int, p domain.CachedPage) error {
	return s.set(bucketPages, pageKey(albumID, page, limit), p)
}

// === Album ids ===

func (s *PhotoStore) GetAlbumIDs() ([]int, bool) {
	var ids []int
	ok := s.get(bucketAlbums, "ids", &ids)
	return ids, ok
}

func (s *PhotoStore) SaveAlbumIDs(ids []int) error {
	return s.set(bucketAlbums, "ids", ids)
}

// === Invalidation ===

// InvalidateAlbum wipes every cached page of one album (0 = the unfiltered listing)
func (s *PhotoStore) InvalidateAlbum(albumID int) {
	s.deletePrefix(bucketPages, albumPrefix(albumID))
}

// InvalidatePages wipes all cached pages but keeps the album list
func (s *PhotoStore) InvalidatePages() {
	s.deletePrefix(bucketPages, "album:")
}

func (s *PhotoStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if tx.Bucket(name) == nil {
				continue
			}
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}
