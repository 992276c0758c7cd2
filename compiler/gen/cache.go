package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/resgen/compiler/load"
)

// cacheVersion is bumped whenever the emitted code changes shape, so stale
// manifests are ignored.
const cacheVersion = 1

// Manifest is the on-disk generation cache. It maps each generated file to
// the digest of the inputs it was generated from and of its content.
type Manifest struct {
	Version int                   `msgpack:"version"`
	Files   map[string]CacheEntry `msgpack:"files"`
}

// CacheEntry records one generated file.
type CacheEntry struct {
	Input  string `msgpack:"input"`
	Output string `msgpack:"output"`
}

// Cache skips regenerating files whose inputs did not change. It is safe for
// concurrent use.
type Cache struct {
	path string

	mu    sync.Mutex
	m     Manifest
	dirty bool
}

// OpenCache reads the manifest at path. A missing, unreadable or outdated
// manifest yields an empty cache.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{path: path, m: Manifest{Version: cacheVersion, Files: make(map[string]CacheEntry)}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return c, nil
	case err != nil:
		return nil, NewGenerationError("cache", path, "read manifest", err)
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil || m.Version != cacheVersion || m.Files == nil {
		c.dirty = true
		return c, nil
	}
	c.m = m
	return c, nil
}

// Fresh reports whether file was generated from input and is unchanged on
// disk since.
func (c *Cache) Fresh(file, input string) bool {
	c.mu.Lock()
	e, ok := c.m.Files[file]
	c.mu.Unlock()
	if !ok || e.Input != input {
		return false
	}
	data, err := os.ReadFile(file)
	return err == nil && digest(data) == e.Output
}

// Put records that file with the given content was generated from input.
func (c *Cache) Put(file, input string, content []byte) {
	e := CacheEntry{Input: input, Output: digest(content)}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m.Files[file] != e {
		c.m.Files[file] = e
		c.dirty = true
	}
}

// Len returns the number of recorded files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m.Files)
}

// Save writes the manifest if it changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	data, err := msgpack.Marshal(&c.m)
	if err != nil {
		return NewGenerationError("cache", c.path, "encode manifest", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return NewGenerationError("cache", c.path, "create directory", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return NewGenerationError("cache", c.path, "write manifest", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return NewGenerationError("cache", c.path, "write manifest", err)
	}
	c.dirty = false
	return nil
}

// cacheInput is everything the output of a group depends on.
type cacheInput struct {
	Version   int           `json:"version"`
	Header    string        `json:"header"`
	Take      bool          `json:"take"`
	Wrapper   Wrapper       `json:"wrapper"`
	Container *load.TypeRef `json:"container"`
	Group     *load.Group   `json:"group"`
}

// inputDigest returns the cache key of the file generated for grp.
func inputDigest(c *Config, grp *Group) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	// Positions do not affect the output; the json tags leave them out.
	enc.SetCustomStructTag("json")
	err := enc.Encode(cacheInput{
		Version:   cacheVersion,
		Header:    c.header(),
		Take:      grp.take,
		Wrapper:   grp.Wrapper,
		Container: grp.Container,
		Group:     grp.def,
	})
	if err != nil {
		return "", err
	}
	return digest(buf.Bytes()), nil
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
