// cache.go - a disk cache for expansion results
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package cache stores the results of expansion runs on disk.  A
// cached result is only used while none of the files it was computed
// from has changed.
package cache

import (
	"encoding/base64"
	"encoding/gob"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"
)

const fileSuffix = ".gob"

// ErrStale indicates that one of the input files of a cached result
// has changed since the result was stored.
var ErrStale = errors.New("cache entry is out of date")

// Entry is the information stored for one cache key.
type Entry struct {
	Output string

	// Deps maps the names of all files read during the expansion to
	// the hashes of their contents, as returned by HashFile.
	Deps map[string]string
}

// Cache is a directory of cached expansion results.  The methods of a
// Cache can be used concurrently.
type Cache struct {
	dir     string
	start   time.Time
	lock    sync.Mutex
	entries map[string]*entry
}

// NewCache opens the cache directory dir, creating it if needed.  If
// dir is empty, the directory given by $TEXEXPAND_CACHE is used, or
// a subdirectory of the user's cache directory.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = os.Getenv("TEXEXPAND_CACHE")
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "texexpand")
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		dir:     dir,
		start:   time.Now(),
		entries: make(map[string]*entry),
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, de := range files {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			log.Printf("cache %s: unexpected file %q", dir, name)
			continue
		}
		fi, err := de.Info()
		if err != nil {
			return nil, err
		}
		e := &entry{
			Size: fi.Size(),
			Time: fi.ModTime(),
		}
		c.entries[strings.TrimSuffix(name, fileSuffix)] = e
		total += e.Size
	}
	log.Printf("cache %s: %s (%d objects)", dir, byteSize(total), len(c.entries))
	return c, nil
}

// Close shrinks the cache to at most pruneLimit bytes, removing the
// least recently used entries first.  Entries used since the cache
// was opened are kept.  A negative limit removes all entries and the
// cache directory.
func (c *Cache) Close(pruneLimit int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	var candidates []pruneEntry
	var total int64
	for hash, e := range c.entries {
		candidates = append(candidates, pruneEntry{hash: hash, entry: e})
		total += e.Size
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Time.Before(candidates[j].Time)
	})

	var err error
	var pruneCount int
	var pruneBytes int64
	for _, pe := range candidates {
		if total <= pruneLimit {
			break
		}
		if pruneLimit >= 0 && c.start.Before(pe.Time) {
			break
		}
		e2 := os.Remove(c.filePath(pe.hash))
		if err == nil {
			err = e2
		}
		pruneCount++
		pruneBytes += pe.Size
		total -= pe.Size
	}
	if pruneCount > 0 {
		log.Printf("cache %s: removed %s (%d objects)",
			c.dir, byteSize(pruneBytes), pruneCount)
	}
	if pruneLimit < 0 {
		_ = os.Remove(c.dir)
	}

	c.entries = nil
	return err
}

// Has reports whether an entry for key is stored.  The entry may be
// stale.
func (c *Cache) Has(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	e, ok := c.entries[hashKey(key)]
	if ok {
		e.Time = time.Now()
	}
	return ok
}

// Put stores the entry for key.
func (c *Cache) Put(key string, res *Entry) (err error) {
	hash := hashKey(key)
	w, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(w.Name())
		}
	}()
	err = gob.NewEncoder(w).Encode(res)
	if err != nil {
		w.Close()
		return err
	}
	fi, err := w.Stat()
	if err != nil {
		w.Close()
		return err
	}
	err = w.Close()
	if err != nil {
		return err
	}
	err = os.Rename(w.Name(), c.filePath(hash))
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.entries[hash] = &entry{
		Size: fi.Size(),
		Time: time.Now(),
	}
	c.lock.Unlock()
	return nil
}

// Get returns the entry stored for key.  If no entry is found, an
// error satisfying errors.Is(err, os.ErrNotExist) is returned.  If one
// of the dependencies has changed, ErrStale is returned.
func (c *Cache) Get(key string) (*Entry, error) {
	hash := hashKey(key)
	in, err := os.Open(c.filePath(hash))
	if err != nil {
		return nil, err
	}
	defer in.Close()

	res := &Entry{}
	err = gob.NewDecoder(in).Decode(res)
	if err != nil {
		return nil, err
	}
	for name, sum := range res.Deps {
		current, err := HashFile(name)
		if err != nil || current != sum {
			return nil, ErrStale
		}
	}

	c.lock.Lock()
	if e, ok := c.entries[hash]; ok {
		e.Time = time.Now()
	}
	c.lock.Unlock()
	return res, nil
}

func (c *Cache) filePath(hash string) string {
	return filepath.Join(c.dir, hash+fileSuffix)
}

// HashFile returns a hash of the contents of a file.
func HashFile(name string) (string, error) {
	fd, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer fd.Close()
	h := sha3.New256()
	_, err = io.Copy(h, fd)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

func hashKey(key string) string {
	h := sha3.NewShake128()
	h.Write([]byte(key))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

type entry struct {
	Size int64
	Time time.Time
}

type pruneEntry struct {
	hash string
	*entry
}
