package newfs

// Inode is the in-memory inode, populated lazily from its on-disk record
// (spec ยง3, ยง4.4). Regular files carry a fixed DataPerFile*sz_io data
// buffer; directories carry their children as a linked list rooted at
// Children.
type Inode struct {
	Ino    int
	Size   int
	Target string
	DirCnt int
	Type   FileType

	Dentry   *Dentry // the dentry this inode is bound to
	Children *Dentry // head of the child list, head-insertion order (spec ยง4.4)
	Data     []byte  // regular-file data buffer, len == DataPerFile*sz_io once loaded
}

// attachChild head-inserts child into dir's child list and bumps DirCnt,
// reproducing newfs_alloc_dentry's ordering quirk: children created in
// memory are listed newest first, and a list reloaded from disk is in the
// reverse of its on-disk record order.
func attachChild(dir *Inode, child *Dentry) {
	child.Sibling = dir.Children
	dir.Children = child
	dir.DirCnt++
}
