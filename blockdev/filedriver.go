// Package blockdev provides a concrete newfs.BlockDriver over a local
// file or block device, standing in for the external block-driver shim
// named in spec ยง6.
package blockdev

import (
	"io"
	"os"

	"github.com/zsdliang/newfs"
)

// FileDriver implements newfs.BlockDriver over an *os.File. On Linux, if
// Device names a real block device, DeviceSize/DeviceIOSize use the
// BLKGETSIZE64/BLKSSZGET ioctls; otherwise (a plain image file, or a
// non-Linux build) they fall back to os.Stat and BlockSize.
type FileDriver struct {
	f *os.File

	// BlockSize is used as the logical I/O size when the backing path
	// isn't a real block device and the caller didn't override it via
	// newfs.Options.BlockSize.
	BlockSize int
}

var _ newfs.BlockDriver = (*FileDriver)(nil)

func (d *FileDriver) Open(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	d.f = f
	return nil
}

func (d *FileDriver) Close() error {
	if d.f == nil {
		return nil
	}
	return d.f.Close()
}

func (d *FileDriver) Seek(offset int64, whence int) (int64, error) {
	return d.f.Seek(offset, whence)
}

func (d *FileDriver) ReadBlock(buf []byte) (int, error) {
	return io.ReadFull(d.f, buf)
}

func (d *FileDriver) WriteBlock(buf []byte) (int, error) {
	return d.f.Write(buf)
}

func (d *FileDriver) DeviceSize() (int64, error) {
	if sz, err := deviceSize(d.f); err == nil && sz > 0 {
		return sz, nil
	}
	fi, err := d.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (d *FileDriver) DeviceIOSize() (int, error) {
	if sz, err := deviceIOSize(d.f); err == nil && sz > 0 {
		return sz, nil
	}
	if d.BlockSize > 0 {
		return d.BlockSize, nil
	}
	return 512, nil
}

// CreateImage creates a sparse, szBytes-long plain file at path suitable
// for FileDriver to mount, for cmd/newfsctl's format subcommand.
func CreateImage(path string, szBytes int64) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Truncate(szBytes)
}
