//go:build linux

package blockdev

import (
	"os"

	"golang.org/x/sys/unix"
)

func deviceSize(f *os.File) (int64, error) {
	sz, err := unix.IoctlGetUint64(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, err
	}
	return int64(sz), nil
}

func deviceIOSize(f *os.File) (int, error) {
	sz, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET)
	if err != nil {
		return 0, err
	}
	return sz, nil
}
