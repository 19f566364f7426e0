package dataset

import (
	"encoding/binary"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/locate"
)

// Snapshot is one successful load held by a Cache.
type Snapshot struct {
	Dataset   *Dataset
	Warnings  []Warning
	Signature uint64
	LoadedAt  time.Time
	// Reloaded is true when this Get parsed the files instead of reusing the
	// cached result.
	Reloaded bool
}

// Cache memoizes Load for one directory, keyed by the directory's content
// signature. Fatal results are never cached.
type Cache struct {
	dir  string
	opts Options

	// OnLoad, when set, observes every load attempt.
	OnLoad func(elapsed time.Duration, snap Snapshot, err error)

	mu    sync.Mutex
	snap  Snapshot
	valid bool
	now   func() time.Time
}

// NewCache returns an empty cache for dir.
func NewCache(dir string, opts Options) *Cache {
	return &Cache{dir: dir, opts: opts, now: time.Now}
}

// Dir returns the cached directory.
func (c *Cache) Dir() string { return c.dir }

// Get returns the cached dataset, reloading when the directory changed or the
// cache was invalidated.
func (c *Cache) Get() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sig, sigErr := Signature(c.dir)
	if sigErr == nil && c.valid && c.snap.Signature == sig {
		snap := c.snap
		snap.Reloaded = false
		return snap, nil
	}

	start := c.now()
	ds, warnings, err := Load(c.dir, c.opts)
	elapsed := c.now().Sub(start)
	if err != nil {
		c.valid = false
		c.snap = Snapshot{}
		if c.OnLoad != nil {
			c.OnLoad(elapsed, Snapshot{}, err)
		}
		return Snapshot{}, err
	}

	snap := Snapshot{
		Dataset:   ds,
		Warnings:  warnings,
		Signature: sig,
		LoadedAt:  start,
		Reloaded:  true,
	}
	// Without a signature there is nothing to compare against next time.
	c.valid = sigErr == nil
	c.snap = snap
	if c.OnLoad != nil {
		c.OnLoad(elapsed, snap, nil)
	}
	return snap, nil
}

// Invalidate drops the cached result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.snap = Snapshot{}
}

// Signature hashes the NFC name, size and modification time of every entry
// in dir, independent of enumeration order.
func Signature(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	type stamp struct {
		name  string
		size  int64
		mtime int64
	}
	stamps := make([]stamp, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		stamps = append(stamps, stamp{
			name:  locate.Normalize(e.Name()),
			size:  info.Size(),
			mtime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].name < stamps[j].name })

	h := xxhash.New()
	var buf [8]byte
	for _, s := range stamps {
		_, _ = h.WriteString(s.name)
		_, _ = h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(s.size))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(s.mtime))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64(), nil
}
