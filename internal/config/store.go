package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"tinygo.org/x/tinyfs"
)

// Path is where the record lives on the device filesystem.
const Path = "/config.json"

// MaxSize bounds the record read from storage.
const MaxSize = 256

// FS is the part of tinyfs.Filesystem the store needs.
type FS interface {
	Open(path string) (tinyfs.File, error)
	OpenFile(path string, flags int) (tinyfs.File, error)
	Rename(oldPath, newPath string) error
}

type Store struct {
	fs   FS
	path string
}

func NewStore(fs FS) *Store {
	return &Store{fs: fs, path: Path}
}

// Load reads the stored record. On any failure it returns Default() together
// with the error; callers are expected to log and carry on with the defaults.
func (s *Store) Load() (Config, error) {
	b, err := s.read()
	if err != nil {
		return Default(), err
	}
	c, err := Decode(b)
	if err != nil {
		return Default(), err
	}
	return c, nil
}

func (s *Store) read() ([]byte, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", s.path, err)
	}
	defer f.Close()

	var buf [MaxSize + 1]byte
	n := 0
	for n < len(buf) {
		m, err := f.Read(buf[n:])
		n += m
		if errors.Is(err, io.EOF) || (err == nil && m == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", s.path, err)
		}
	}
	if n > MaxSize {
		return nil, ErrTooLarge
	}
	return buf[:n], nil
}

// Save replaces the stored record with c. The record is written to a
// temporary file first and renamed into place, so a reset mid-write leaves
// the previous record intact.
func (s *Store) Save(c Config) error {
	b, err := Encode(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if len(b) > MaxSize {
		return ErrTooLarge
	}

	tmp := s.path + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", tmp, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("config: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: close %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("config: replace %s: %w", s.path, err)
	}
	return nil
}
