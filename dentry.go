package newfs

// Dentry is the in-memory directory entry (spec ยง3, ยง4.4). Inode is nil
// until lazily populated by Cache.ReadInode.
type Dentry struct {
	Name string
	Ino  int
	Type FileType

	Parent  *Dentry // non-owning
	Sibling *Dentry // next child of the same parent
	Inode   *Inode  // owning; nil until loaded
}

// newDentry creates a detached dentry with no inode bound yet, mirroring
// new_dentry in the original source (ino left unset, sentinel -1).
func newDentry(name string, ftype FileType) *Dentry {
	return &Dentry{Name: name, Type: ftype, Ino: -1}
}
