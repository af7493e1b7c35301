package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileDevice is a tinyfs.BlockDevice backed by a regular file, for host
// builds that have no flash of their own.
type FileDevice struct {
	f         *os.File
	size      int64
	pageSize  int64
	blockSize int64
}

// OpenFileDevice opens or creates path as a device of blocks*blockSize bytes.
// A new or short file is padded with erased (0xFF) bytes.
func OpenFileDevice(path string, pageSize, blockSize, blocks int64) (*FileDevice, error) {
	if pageSize <= 0 || blockSize <= 0 || blocks <= 0 || blockSize%pageSize != 0 {
		return nil, fmt.Errorf("storage: invalid geometry %d/%d/%d", pageSize, blockSize, blocks)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", path, err)
	}
	d := &FileDevice{f: f, size: blockSize * blocks, pageSize: pageSize, blockSize: blockSize}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage: stat %q: %w", path, err)
	}
	if have := fi.Size(); have < d.size {
		if _, err := f.WriteAt(erased(d.size-have), have); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("storage: pad %q: %w", path, err)
		}
	}
	return d, nil
}

func (d *FileDevice) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(buf)) > d.size {
		return 0, errors.New("storage: read out of range")
	}
	n, err := d.f.ReadAt(buf, off)
	if err == io.EOF && n == len(buf) {
		err = nil
	}
	return n, err
}

func (d *FileDevice) WriteAt(buf []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(buf)) > d.size {
		return 0, errors.New("storage: write out of range")
	}
	return d.f.WriteAt(buf, off)
}

func (d *FileDevice) Size() int64           { return d.size }
func (d *FileDevice) WriteBlockSize() int64 { return d.pageSize }
func (d *FileDevice) EraseBlockSize() int64 { return d.blockSize }

// EraseBlocks resets count blocks starting at block start to 0xFF.
func (d *FileDevice) EraseBlocks(start, count int64) error {
	off := start * d.blockSize
	n := count * d.blockSize
	if start < 0 || count < 0 || off+n > d.size {
		return errors.New("storage: erase out of range")
	}
	_, err := d.f.WriteAt(erased(n), off)
	return err
}

func (d *FileDevice) Close() error {
	return d.f.Close()
}

func erased(n int64) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
