// Package assets writes generated asset buffers to a filesystem.
package assets

import (
	"bytes"
	"fmt"
	"io"
	"path"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/Faultbox/terragen/pkg/formats"
)

// Store saves and loads tile buffers on a filesystem.
type Store struct {
	// Filesystem is the directory tree assets are written into.
	Filesystem billy.Filesystem
}

// NewStore creates a store rooted at dir on the local disk.
func NewStore(dir string) *Store {
	return &Store{Filesystem: osfs.New(dir)}
}

// WriteTiles encodes tiles to name.
//
// The buffer goes to a temporary file in the same directory which is then
// renamed over name, so a failed run never leaves a truncated asset behind.
// It returns the number of bytes written.
func (s *Store) WriteTiles(name string, tiles []formats.Tile) (int, error) {
	dir := path.Dir(name)
	if err := s.Filesystem.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(tiles) * formats.TileRecordSize)
	if err := formats.WriteTiles(&buf, tiles); err != nil {
		return 0, err
	}

	temp, err := s.Filesystem.TempFile(dir, path.Base(name)+".tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	n, err := temp.Write(buf.Bytes())
	err = multierr.Append(err, temp.Close())
	if err != nil {
		err = multierr.Append(err, s.Filesystem.Remove(temp.Name()))
		return 0, fmt.Errorf("writing %s: %w", name, err)
	}

	if err := s.Filesystem.Rename(temp.Name(), name); err != nil {
		return 0, multierr.Append(
			fmt.Errorf("replacing %s: %w", name, err),
			s.Filesystem.Remove(temp.Name()))
	}

	return n, nil
}

// ReadTiles loads and decodes the tile buffer at name.
func (s *Store) ReadTiles(name string) ([]formats.Tile, error) {
	file, err := s.Filesystem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	data, err := io.ReadAll(file)
	err = multierr.Append(err, file.Close())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return formats.ParseTiles(data)
}

// Size returns the size in bytes of the asset at name.
func (s *Store) Size(name string) (int64, error) {
	info, err := s.Filesystem.Stat(name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
