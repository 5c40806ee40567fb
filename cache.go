package newfs

import "log"

// Cache is the mounted filesystem's in-memory state: the block adapter,
// layout, bitmap allocator and the lazily-populated dentry/inode tree
// rooted at root. It is the explicit context object spec ยง9 calls for in
// place of global superblock state.
type Cache struct {
	drv    BlockDriver
	adp    *adapter
	layout *Layout
	alloc  *Allocator
	szIO   int
	root   *Dentry
	comp   Compression
}

func (c *Cache) inodeOffset(ino int) int64 {
	return int64(c.layout.InodeOffset + ino*c.szIO)
}

func (c *Cache) dataOffset(ino int) int64 {
	return int64(c.layout.DataOffset + ino*DataPerFile*c.szIO)
}

// AllocInodeFor allocates a fresh inode number for d and binds a new Inode
// to it, allocating a data buffer for regular files. Mirrors
// newfs_alloc_inode.
func (c *Cache) AllocInodeFor(d *Dentry) (*Inode, error) {
	ino, err := c.alloc.AllocInode()
	if err != nil {
		return nil, err
	}
	inode := &Inode{Ino: ino, Type: d.Type, Dentry: d}
	if d.Type == TypeRegFile {
		inode.Data = make([]byte, DataPerFile*c.szIO)
	}
	d.Inode = inode
	d.Ino = ino
	return inode, nil
}

// ReadInode loads ino's record from disk and binds it to d, populating a
// directory's immediate child dentries (not their grandchildren --
// those load lazily on first access, per spec ยง4.4). Mirrors
// newfs_read_inode.
func (c *Cache) ReadInode(d *Dentry, ino int) (*Inode, error) {
	buf, err := c.adp.read(c.inodeOffset(ino), inodeDiskSize())
	if err != nil {
		log.Printf("newfs: failed to read inode %d: %s", ino, err)
		return nil, ErrIO
	}
	var rec InodeDisk
	if err := rec.UnmarshalBinary(buf); err != nil {
		log.Printf("newfs: failed to decode inode %d: %s", ino, err)
		return nil, ErrIO
	}

	inode := &Inode{
		Ino:    int(rec.Ino),
		Size:   int(rec.Size),
		Target: bufToName(rec.Target),
		Type:   FileType(rec.Ftype),
		Dentry: d,
	}
	d.Inode = inode
	d.Ino = int(rec.Ino)
	d.Type = inode.Type

	switch inode.Type {
	case TypeDir:
		childCount := int(rec.DirCnt)
		base := c.dataOffset(ino)
		stride := int64(dentryDiskSize())
		for i := 0; i < childCount; i++ {
			dbuf, err := c.adp.read(base+int64(i)*stride, dentryDiskSize())
			if err != nil {
				log.Printf("newfs: failed to read dentry %d of inode %d: %s", i, ino, err)
				return nil, ErrIO
			}
			var drec DentryDisk
			if err := drec.UnmarshalBinary(dbuf); err != nil {
				log.Printf("newfs: failed to decode dentry %d of inode %d: %s", i, ino, err)
				return nil, ErrIO
			}
			child := &Dentry{
				Name:   bufToName(drec.Fname),
				Ino:    int(drec.Ino),
				Type:   FileType(drec.Ftype),
				Parent: d,
			}
			attachChild(inode, child)
		}
	case TypeRegFile:
		full := DataPerFile * c.szIO
		raw, err := c.adp.read(c.dataOffset(ino), full)
		if err != nil {
			log.Printf("newfs: failed to read data for inode %d: %s", ino, err)
			return nil, ErrIO
		}
		data, err := c.decodeFileData(raw, inode.Size)
		if err != nil {
			return nil, err
		}
		inode.Data = data
	}
	return inode, nil
}

// SyncInode writes inode's record to disk and, for directories, each child
// dentry record followed by a recursive sync of any already-loaded child
// inode. Mirrors newfs_sync_inode, including its data-bitmap marking via
// Allocator.MarkData.
func (c *Cache) SyncInode(inode *Inode) error {
	target, err := nameToBuf(inode.Target)
	if err != nil {
		return ErrInval
	}
	rec := InodeDisk{
		Ino:    uint32(inode.Ino),
		Size:   uint32(inode.Size),
		Target: target,
		DirCnt: uint32(inode.DirCnt),
		Ftype:  uint32(inode.Type),
	}
	buf, err := rec.MarshalBinary()
	if err != nil {
		log.Printf("newfs: failed to encode inode %d: %s", inode.Ino, err)
		return ErrIO
	}
	if err := c.adp.write(c.inodeOffset(inode.Ino), buf); err != nil {
		log.Printf("newfs: failed to write inode %d: %s", inode.Ino, err)
		return ErrIO
	}

	switch inode.Type {
	case TypeDir:
		offset := c.dataOffset(inode.Ino)
		stride := int64(dentryDiskSize())
		for child := inode.Children; child != nil; child = child.Sibling {
			fname, err := nameToBuf(child.Name)
			if err != nil {
				return ErrInval
			}
			drec := DentryDisk{Fname: fname, Ftype: uint32(child.Type), Ino: uint32(child.Ino)}
			dbuf, err := drec.MarshalBinary()
			if err != nil {
				log.Printf("newfs: failed to encode dentry %q of inode %d: %s", child.Name, inode.Ino, err)
				return ErrIO
			}
			if err := c.adp.write(offset, dbuf); err != nil {
				log.Printf("newfs: failed to write dentry %q of inode %d: %s", child.Name, inode.Ino, err)
				return ErrIO
			}
			c.alloc.MarkData(int(offset)-c.layout.DataOffset, c.szIO)
			if child.Inode != nil {
				if err := c.SyncInode(child.Inode); err != nil {
					return err
				}
			}
			offset += stride
		}
	case TypeRegFile:
		c.alloc.MarkData(int(c.dataOffset(inode.Ino))-c.layout.DataOffset, c.szIO)
		data, err := c.encodeFileData(inode)
		if err != nil {
			return err
		}
		if err := c.adp.write(c.dataOffset(inode.Ino), data); err != nil {
			log.Printf("newfs: failed to write data for inode %d: %s", inode.Ino, err)
			return ErrIO
		}
	}
	return nil
}

// GetChild returns the index-th dentry in dir's child list (head-insertion
// order), or (nil, false) if index is out of range. Mirrors
// newfs_get_dentry.
func (c *Cache) GetChild(dir *Inode, index int) (*Dentry, bool) {
	cur := dir.Children
	i := 0
	for cur != nil {
		if i == index {
			return cur, true
		}
		i++
		cur = cur.Sibling
	}
	return nil, false
}

// ensureInode lazily loads d's inode if it isn't already bound.
func (c *Cache) ensureInode(d *Dentry) error {
	if d.Inode != nil {
		return nil
	}
	_, err := c.ReadInode(d, d.Ino)
	return err
}
