//go:build !linux

package blockdev

import (
	"errors"
	"os"
)

var errNoIoctl = errors.New("blockdev: geometry ioctls unavailable on this platform")

func deviceSize(f *os.File) (int64, error) { return 0, errNoIoctl }
func deviceIOSize(f *os.File) (int, error) { return 0, errNoIoctl }
