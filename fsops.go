package newfs

// CreateChild composes alloc_inode + attach_child + sync_inode (spec ยง6's
// named primitives) into the single step a VFS-level create/mkdir needs.
// It rejects a name collision with ErrExists, using the same prefix
// comparison Lookup uses so a short existing name can't be masked by a
// create of a longer one that shares its prefix.
func (c *Cache) CreateChild(dir *Inode, name string, ftype FileType) (*Dentry, error) {
	if len(name) == 0 || len(name) > MaxNameLen {
		return nil, ErrInval
	}
	if dir.Type != TypeDir {
		return nil, ErrNotADir
	}
	for child := dir.Children; child != nil; child = child.Sibling {
		if prefixMatch(child.Name, name) || prefixMatch(name, child.Name) {
			return nil, ErrExists
		}
	}

	d := newDentry(name, ftype)
	d.Parent = dir.Dentry
	if _, err := c.AllocInodeFor(d); err != nil {
		return nil, err
	}
	attachChild(dir, d)
	if err := c.SyncInode(dir); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteFile overwrites a regular file's data buffer. The logical length
// must fit within DataPerFile*sz_io (spec ยง1 Non-goals: no fragmentation
// beyond that fixed cap).
func (c *Cache) WriteFile(inode *Inode, data []byte) error {
	if inode.Type != TypeRegFile {
		return ErrIsDir
	}
	full := DataPerFile * c.szIO
	if len(data) > full {
		return ErrNoSpace
	}
	buf := make([]byte, full)
	copy(buf, data)
	inode.Data = buf
	inode.Size = len(data)
	return c.SyncInode(inode)
}
