package newfs

import "testing"

func TestLookupRoot(t *testing.T) {
	fsys, _ := mountFresh(t)
	d, found, isRoot, err := fsys.Cache().Lookup("/")
	if err != nil {
		t.Fatalf("Lookup(/): %v", err)
	}
	if !found || !isRoot {
		t.Errorf("Lookup(/) = found=%v isRoot=%v, want both true", found, isRoot)
	}
	if d != fsys.Root() {
		t.Error("Lookup(/) should return the root dentry")
	}
}

func TestLookupNotFound(t *testing.T) {
	fsys, _ := mountFresh(t)
	d, found, isRoot, err := fsys.Cache().Lookup("/missing")
	if err != nil {
		t.Fatalf("Lookup(/missing): %v", err)
	}
	if found || isRoot {
		t.Errorf("Lookup(/missing) = found=%v isRoot=%v, want both false", found, isRoot)
	}
	if d != fsys.Root() {
		t.Error("Lookup(/missing) should return the last directory successfully descended into (root)")
	}
}

func TestLookupNotADirectory(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	if _, err := cache.CreateChild(fsys.Root().Inode, "leaf", TypeRegFile); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	_, found, _, err := cache.Lookup("/leaf/sub")
	if err != nil {
		t.Fatalf("Lookup(/leaf/sub): %v", err)
	}
	if found {
		t.Error("Lookup through a regular file should report found=false")
	}
}

// TestLookupPrefixMatchQuirk exercises the resolver's intentionally
// preserved defect (SPEC_FULL.md ยง4.5): a query component only needs to
// match the first len(component) bytes of a stored name, so a short query
// can match a longer, unrelated name.
func TestLookupPrefixMatchQuirk(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	if _, err := cache.CreateChild(fsys.Root().Inode, "abcdef", TypeRegFile); err != nil {
		t.Fatalf("CreateChild: %v", err)
	}

	d, found, _, err := cache.Lookup("/abc")
	if err != nil {
		t.Fatalf("Lookup(/abc): %v", err)
	}
	if !found {
		t.Fatal("Lookup(/abc) should match the longer name abcdef via prefix comparison")
	}
	if d.Name != "abcdef" {
		t.Errorf("Lookup(/abc) matched %q, want %q", d.Name, "abcdef")
	}

	// A query longer than the stored name must not match.
	if _, found, _, err := cache.Lookup("/abcdefg"); err != nil {
		t.Fatalf("Lookup(/abcdefg): %v", err)
	} else if found {
		t.Error("Lookup(/abcdefg) should not match the shorter stored name abcdef")
	}
}

func TestLookupDescendsMultipleLevels(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	root := fsys.Root().Inode

	sub, err := cache.CreateChild(root, "sub", TypeDir)
	if err != nil {
		t.Fatalf("CreateChild(sub): %v", err)
	}
	if _, err := cache.CreateChild(sub.Inode, "leaf", TypeRegFile); err != nil {
		t.Fatalf("CreateChild(leaf): %v", err)
	}

	d, found, isRoot, err := cache.Lookup("/sub/leaf")
	if err != nil {
		t.Fatalf("Lookup(/sub/leaf): %v", err)
	}
	if !found || isRoot {
		t.Fatalf("Lookup(/sub/leaf) = found=%v isRoot=%v, want found=true isRoot=false", found, isRoot)
	}
	if d.Name != "leaf" {
		t.Errorf("Lookup(/sub/leaf).Name = %q, want %q", d.Name, "leaf")
	}
}
