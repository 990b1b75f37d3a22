// Package file persists key-value data as one JSON document per key under
// a data directory. It is the local, single-writer backend the app uses by
// default.
package file

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store implements kv.Store on the filesystem. Writes go through a temp
// file plus rename so a crashed write never leaves a truncated document.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(_ context.Context, key string, out any) bool {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("kv get %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("kv get %q: corrupt value: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Set(_ context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	tmp, err := os.CreateTemp(s.dir, key+".*")
	if err != nil {
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Remove(_ context.Context, key string) bool {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("kv remove %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) path(key string) string {
	// keys are fixed constants but sanitize anyway
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, name+".json")
}
