package newfs

import "log"

// Options configures a Mount call (SPEC_FULL.md ยง6). Device is
// spec.md's {device: path}; BlockSize and Compression are the added knobs,
// and both default to zero values that reproduce spec.md's original,
// uncompressed behavior.
type Options struct {
	Device string

	// BlockSize overrides the driver-reported I/O size. Zero means trust
	// BlockDriver.DeviceIOSize.
	BlockSize int

	// Compression selects the at-rest codec for regular-file data
	// buffers. CompNone reproduces spec.md's original behavior exactly.
	Compression Compression
}

// FS is a mounted filesystem instance.
type FS struct {
	drv     BlockDriver
	cache   *Cache
	mounted bool
}

// Root returns the mounted tree's root dentry, with its inode loaded.
func (fs *FS) Root() *Dentry { return fs.cache.root }

// Cache exposes the underlying Cache for callers (CLI, FUSE adapter) that
// need direct access to Lookup/ReadInode/SyncInode/GetChild/AllocInodeFor.
func (fs *FS) Cache() *Cache { return fs.cache }

// Mount opens drv and brings a newfs image to a ready state: formatting it
// on first boot, or loading its superblock and inode bitmap otherwise.
// Mirrors newfs_mount.
func Mount(drv BlockDriver, opts Options) (*FS, error) {
	if err := drv.Open(opts.Device); err != nil {
		log.Printf("newfs: failed to open %s: %s", opts.Device, err)
		return nil, ErrIO
	}

	szDisk64, err := drv.DeviceSize()
	if err != nil {
		log.Printf("newfs: failed to read device size of %s: %s", opts.Device, err)
		return nil, ErrIO
	}
	szIO, err := drv.DeviceIOSize()
	if err != nil {
		log.Printf("newfs: failed to read device I/O size of %s: %s", opts.Device, err)
		return nil, ErrIO
	}
	if opts.BlockSize > 0 {
		szIO = opts.BlockSize
	}
	szDisk := int(szDisk64)

	if opts.Compression != CompNone && !compressionAvailable(opts.Compression) {
		return nil, ErrUnsupported
	}

	adp := newAdapter(drv, szIO)

	sbBuf, err := adp.read(0, superblockDiskSize())
	if err != nil {
		log.Printf("newfs: failed to read superblock of %s: %s", opts.Device, err)
		return nil, ErrIO
	}
	var sbRec SuperblockDisk
	if err := sbRec.UnmarshalBinary(sbBuf); err != nil {
		log.Printf("newfs: failed to decode superblock of %s: %s", opts.Device, err)
		return nil, ErrInvalidSuper
	}

	isInit := sbRec.Magic != MagicNum
	if isInit {
		log.Printf("newfs: %s has no valid superblock, formatting", opts.Device)
	}

	var layout *Layout
	if isInit {
		layout, err = computeLayout(szDisk, szIO)
		if err != nil {
			log.Printf("newfs: failed to compute layout for %s: %s", opts.Device, err)
			return nil, err
		}
	} else {
		layout = layoutFromSuperblock(szDisk, szIO, &sbRec)
	}

	alloc := newAllocator(layout.MapInodeBlks, layout.MapDataBlks, szIO, layout.MaxIno)

	root := newDentry("/", TypeDir)
	root.Ino = RootIno

	cache := &Cache{drv: drv, adp: adp, layout: layout, alloc: alloc, szIO: szIO, root: root, comp: opts.Compression}

	if !isInit {
		inodeMapBuf, err := adp.read(int64(layout.MapInodeOffset), layout.MapInodeBlks*szIO)
		if err != nil {
			log.Printf("newfs: failed to read inode bitmap of %s: %s", opts.Device, err)
			return nil, ErrIO
		}
		alloc.loadInodeMap(inodeMapBuf)

		// The original source allocates the data bitmap but never reads
		// it back from disk on mount (newfs_mount only re-reads
		// map_inode). We additionally reload it here for round-trip
		// fidelity across unmount/remount -- a SUPPLEMENT beyond the
		// original's behavior, not a change to any tested invariant.
		dataMapBuf, err := adp.read(int64(layout.MapDataOffset), layout.MapDataBlks*szIO)
		if err == nil {
			alloc.loadDataMap(dataMapBuf)
		}
	}

	if isInit {
		inode, err := cache.AllocInodeFor(root)
		if err != nil {
			log.Printf("newfs: failed to allocate root inode on %s: %s", opts.Device, err)
			return nil, err
		}
		if err := cache.SyncInode(inode); err != nil {
			log.Printf("newfs: failed to sync root inode on %s: %s", opts.Device, err)
			return nil, err
		}
	} else {
		if _, err := cache.ReadInode(root, RootIno); err != nil {
			log.Printf("newfs: failed to read root inode on %s: %s", opts.Device, err)
			return nil, err
		}
	}

	return &FS{drv: drv, cache: cache, mounted: true}, nil
}

// Unmount flushes the tree and both bitmaps to disk, then closes the
// driver. All writes are attempted even if an earlier one fails; the
// first error encountered is returned (spec ยง7). sz_usage is always
// persisted as 0, matching the original source (see DESIGN.md Open
// Question c).
func (fs *FS) Unmount() error {
	if !fs.mounted {
		return nil
	}

	var firstErr error
	record := func(err error) {
		if err == nil {
			return
		}
		log.Printf("newfs: unmount error: %s", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	record(fs.cache.SyncInode(fs.cache.root.Inode))

	l := fs.cache.layout
	sb := SuperblockDisk{
		Magic:          MagicNum,
		SzUsage:        0,
		MaxIno:         uint32(l.MaxIno),
		MapInodeBlks:   uint32(l.MapInodeBlks),
		MapInodeOffset: uint32(l.MapInodeOffset),
		MapDataBlks:    uint32(l.MapDataBlks),
		MapDataOffset:  uint32(l.MapDataOffset),
		InodeBlks:      uint32(l.InodeBlks),
		InodeOffset:    uint32(l.InodeOffset),
		DataOffset:     uint32(l.DataOffset),
	}
	buf, err := sb.MarshalBinary()
	if err != nil {
		record(ErrIO)
	} else {
		record(fs.cache.adp.write(0, buf))
	}

	record(fs.cache.adp.write(int64(l.MapInodeOffset), fs.cache.alloc.inodeMapBytes()))
	record(fs.cache.adp.write(int64(l.MapDataOffset), fs.cache.alloc.dataMapBytes()))

	fs.mounted = false
	record(fs.drv.Close())
	return firstErr
}
