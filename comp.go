package newfs

import "fmt"

// Compression selects the algorithm used to compress a regular file's data
// buffer at rest (SPEC_FULL.md ยง2 item 9, ยง4.9). It never affects the
// logical/in-memory Inode.Size or Data semantics from spec ยง3.
type Compression uint16

const (
	CompNone Compression = 0
	CompXZ   Compression = 1
	CompZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompXZ:
		return "xz"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", c)
}
