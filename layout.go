package newfs

import "strings"

// DataPerFile is the fixed number of sz_io-sized data blocks a regular file
// may occupy (spec ยง3, ยง9 GLOSSARY). MaxNameLen is the fixed width of the
// on-disk filename/target-path buffers. RootIno is the inode number the
// root dentry is always bound to.
const (
	DataPerFile = 6
	MaxNameLen  = 128
	RootIno     = 0
)

// MagicNum is the superblock magic that marks a device as formatted.
const MagicNum uint32 = 0x12345678

// Layout is the computed (or disk-loaded) on-disk region map described in
// spec ยง3. It is held by Cache, the explicit context object used in
// place of global superblock state.
type Layout struct {
	SzDisk int
	SzIO   int

	SuperBlks int

	InodeNum int
	MaxIno   int

	MapInodeBlks   int
	MapInodeOffset int

	MapDataBlks   int
	MapDataOffset int

	InodeBlks   int
	InodeOffset int

	DataOffset int
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}

// computeLayout derives a fresh Layout from raw device geometry, following
// the arithmetic in original_source/fs/newfs/src/newfs_utils.c's
// newfs_mount first-boot branch: one inode per (DATA_PER_FILE+1) blocks,
// one bit per inode/data-block in their respective bitmaps.
func computeLayout(szDisk, szIO int) (*Layout, error) {
	if szIO <= 0 || szDisk <= 0 {
		return nil, ErrInval
	}

	superBlks := ceilDiv(superblockDiskSize(), szIO)

	inodeNum := szDisk / ((DataPerFile + 1) * szIO)
	if inodeNum <= 0 {
		return nil, ErrInval
	}
	mapInodeBlks := ceilDiv(ceilDiv(inodeNum, 32), szIO)

	dataBlksNum := szDisk / szIO
	mapDataBlks := ceilDiv(ceilDiv(dataBlksNum, 32), szIO)

	maxIno := inodeNum - superBlks - mapInodeBlks - mapDataBlks
	if maxIno <= 0 {
		return nil, ErrInval
	}

	mapInodeOffset := superBlks * szIO
	mapDataOffset := mapInodeOffset + mapInodeBlks*szIO
	inodeOffset := mapDataOffset + mapDataBlks*szIO
	dataOffset := inodeOffset + inodeNum*szIO

	return &Layout{
		SzDisk:         szDisk,
		SzIO:           szIO,
		SuperBlks:      superBlks,
		InodeNum:       inodeNum,
		MaxIno:         maxIno,
		MapInodeBlks:   mapInodeBlks,
		MapInodeOffset: mapInodeOffset,
		MapDataBlks:    mapDataBlks,
		MapDataOffset:  mapDataOffset,
		InodeBlks:      inodeNum,
		InodeOffset:    inodeOffset,
		DataOffset:     dataOffset,
	}, nil
}

// layoutFromSuperblock rebuilds a Layout from a decoded on-disk superblock
// record, used on every mount after the first.
func layoutFromSuperblock(szDisk, szIO int, sb *SuperblockDisk) *Layout {
	return &Layout{
		SzDisk:         szDisk,
		SzIO:           szIO,
		MaxIno:         int(sb.MaxIno),
		MapInodeBlks:   int(sb.MapInodeBlks),
		MapInodeOffset: int(sb.MapInodeOffset),
		MapDataBlks:    int(sb.MapDataBlks),
		MapDataOffset:  int(sb.MapDataOffset),
		InodeBlks:      int(sb.InodeBlks),
		InodeOffset:    int(sb.InodeOffset),
		DataOffset:     int(sb.DataOffset),
	}
}

// calcLevel returns the number of slash-separated components in path; "/"
// is level 0. Mirrors newfs_calc_lvl in the original source.
func calcLevel(path string) int {
	if path == "/" {
		return 0
	}
	lvl := 0
	for _, c := range path {
		if c == '/' {
			lvl++
		}
	}
	return lvl
}

// splitComponents splits a slash-separated path into its non-empty
// components, the way strtok(path, "/") does in the original source.
func splitComponents(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
