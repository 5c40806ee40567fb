package newfs

import (
	"io"
	"log"
)

// BlockDriver is the external block-driver shim's contract, per spec ยง6.
// The core never opens a device itself; it is handed an already-openable
// BlockDriver implementation (see package blockdev for the concrete
// file/block-device-backed one).
type BlockDriver interface {
	Open(path string) error
	Close() error
	Seek(offset int64, whence int) (int64, error)
	ReadBlock(buf []byte) (int, error)
	WriteBlock(buf []byte) (int, error)
	DeviceSize() (int64, error)
	DeviceIOSize() (int, error)
}

// adapter hides sz_io alignment from the rest of the core (spec ยง4.1),
// turning arbitrary-offset/size reads and writes into a sequence of
// sz_io-sized transfers against the underlying BlockDriver. Writes are
// always read-modify-write, mirroring newfs_driver_write in the original
// source: even a fully-aligned write re-reads its region first.
type adapter struct {
	drv  BlockDriver
	szIO int
}

func newAdapter(drv BlockDriver, szIO int) *adapter {
	return &adapter{drv: drv, szIO: szIO}
}

func roundDown(v, unit int) int {
	return (v / unit) * unit
}

func roundUp(v, unit int) int {
	if v%unit == 0 {
		return v
	}
	return (v/unit + 1) * unit
}

func (a *adapter) read(offset int64, size int) ([]byte, error) {
	alignedOffset := roundDown(int(offset), a.szIO)
	bias := int(offset) - alignedOffset
	alignedSize := roundUp(size+bias, a.szIO)

	if _, err := a.drv.Seek(int64(alignedOffset), io.SeekStart); err != nil {
		log.Printf("newfs: seek to %d failed: %s", alignedOffset, err)
		return nil, ErrSeek
	}
	buf := make([]byte, alignedSize)
	cur := buf
	for len(cur) > 0 {
		n, err := a.drv.ReadBlock(cur[:a.szIO])
		if err != nil || n != a.szIO {
			log.Printf("newfs: failed to read block at offset %d: %s", alignedOffset, err)
			return nil, ErrIO
		}
		cur = cur[a.szIO:]
	}
	return buf[bias : bias+size], nil
}

func (a *adapter) write(offset int64, data []byte) error {
	size := len(data)
	alignedOffset := roundDown(int(offset), a.szIO)
	bias := int(offset) - alignedOffset
	alignedSize := roundUp(size+bias, a.szIO)

	buf, err := a.read(int64(alignedOffset), alignedSize)
	if err != nil {
		return err
	}
	copy(buf[bias:bias+size], data)

	if _, err := a.drv.Seek(int64(alignedOffset), io.SeekStart); err != nil {
		log.Printf("newfs: seek to %d failed: %s", alignedOffset, err)
		return ErrSeek
	}
	cur := buf
	for len(cur) > 0 {
		n, err := a.drv.WriteBlock(cur[:a.szIO])
		if err != nil || n != a.szIO {
			log.Printf("newfs: failed to write block at offset %d: %s", alignedOffset, err)
			return ErrIO
		}
		cur = cur[a.szIO:]
	}
	return nil
}
