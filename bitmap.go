package newfs

import bitmap "github.com/boljen/go-bitmap"

// Allocator owns the inode and data-block free bitmaps (spec ยง4.3),
// backed by github.com/boljen/go-bitmap rather than hand-rolled bit
// arithmetic (see DESIGN.md, grounded on the dargueta-disko bitmap-driver
// pattern).
type Allocator struct {
	inodeMap bitmap.Bitmap
	dataMap  bitmap.Bitmap
	maxIno   int
}

func newAllocator(mapInodeBlks, mapDataBlks, szIO, maxIno int) *Allocator {
	return &Allocator{
		inodeMap: bitmap.New(mapInodeBlks * szIO * 8),
		dataMap:  bitmap.New(mapDataBlks * szIO * 8),
		maxIno:   maxIno,
	}
}

func (a *Allocator) loadInodeMap(buf []byte) { a.inodeMap = bitmap.Bitmap(buf) }
func (a *Allocator) loadDataMap(buf []byte)  { a.dataMap = bitmap.Bitmap(buf) }

func (a *Allocator) inodeMapBytes() []byte { return a.inodeMap.Data(false) }
func (a *Allocator) dataMapBytes() []byte  { return a.dataMap.Data(false) }

// AllocInode performs a linear scan for the first cleared bit and sets it,
// returning its index as the new inode number. Bits are never cleared
// again (no reclamation, spec ยง1 Non-goals / ยง9).
func (a *Allocator) AllocInode() (int, error) {
	for i := 0; i < a.maxIno; i++ {
		if !a.inodeMap.Get(i) {
			a.inodeMap.Set(i, true)
			return i, nil
		}
	}
	return 0, ErrNoSpace
}

// MarkData marks data-map bit ceil(relOffset / szIO) as in-use, where
// relOffset is a byte offset relative to the start of the data region, and
// returns that index. Idempotent, matching fillDataMap in the original
// source.
func (a *Allocator) MarkData(relOffset, szIO int) int {
	idx := ceilDiv(relOffset, szIO)
	a.dataMap.Set(idx, true)
	return idx
}
