package newfs

import "log"

// Lookup resolves path against the mounted tree (spec ยง4.5). It returns
// the matched dentry (or, on a miss, the directory whose children had no
// match, or the regular file the path tried to descend through), whether a
// match was found, whether it is the root,
// and any driver error encountered while lazily loading an inode along the
// way. Component comparison intentionally uses the same prefix match as
// the original source (memcmp over len(component) bytes, not the stored
// name's length) -- see SPEC_FULL.md ยง4.5 and DESIGN.md.
func (c *Cache) Lookup(path string) (dentry *Dentry, found bool, isRoot bool, err error) {
	total := calcLevel(path)
	if total == 0 {
		if err := c.ensureInode(c.root); err != nil {
			return c.root, true, true, err
		}
		return c.root, true, true, nil
	}

	cursor := c.root
	lvl := 0
	for _, comp := range splitComponents(path) {
		lvl++

		if err := c.ensureInode(cursor); err != nil {
			log.Printf("newfs: lookup %q: failed to load inode for %q: %s", path, cursor.Name, err)
			return cursor, false, false, err
		}
		inode := cursor.Inode

		if inode.Type == TypeRegFile && lvl < total {
			log.Printf("newfs: lookup %q: [%s] not a dir", path, cursor.Name)
			return cursor, false, false, nil
		}

		if inode.Type != TypeDir {
			log.Printf("newfs: lookup %q: [%s] not a dir", path, cursor.Name)
			return cursor, false, false, nil
		}

		var match *Dentry
		for child := inode.Children; child != nil; child = child.Sibling {
			if prefixMatch(child.Name, comp) {
				match = child
				break
			}
		}
		if match == nil {
			log.Printf("newfs: lookup %q: [%s] not found", path, comp)
			return cursor, false, false, nil
		}
		if lvl == total {
			if err := c.ensureInode(match); err != nil {
				return match, true, false, err
			}
			return match, true, false, nil
		}
		cursor = match
	}
	return cursor, false, false, nil
}

// prefixMatch compares name's first len(comp) bytes against comp, the
// same comparison newfs_lookup performs via memcmp(name, comp,
// strlen(comp)). A name longer than comp can still match it.
func prefixMatch(name, comp string) bool {
	if len(name) < len(comp) {
		return false
	}
	return name[:len(comp)] == comp
}
