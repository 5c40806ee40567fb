package newfs

import "testing"

const (
	testSzDisk = 1 << 20
	testSzIO   = 512
)

func mountFresh(t *testing.T) (*FS, *testDriver) {
	t.Helper()
	drv := newTestDriver(testSzDisk, testSzIO)
	fsys, err := Mount(drv, Options{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return fsys, drv
}

func TestMountFormatsFreshImage(t *testing.T) {
	fsys, _ := mountFresh(t)
	root := fsys.Root()
	if root.Inode == nil {
		t.Fatal("root inode not loaded after first-boot mount")
	}
	if root.Inode.Ino != RootIno {
		t.Errorf("root ino = %d, want %d", root.Inode.Ino, RootIno)
	}
	if !root.Inode.Type.IsDir() {
		t.Errorf("root type = %s, want DIR", root.Inode.Type)
	}
	if root.Inode.DirCnt != 0 {
		t.Errorf("fresh root dir_cnt = %d, want 0", root.Inode.DirCnt)
	}
	if err := fsys.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
}

func TestUnmountIsIdempotent(t *testing.T) {
	fsys, _ := mountFresh(t)
	if err := fsys.Unmount(); err != nil {
		t.Fatalf("first Unmount: %v", err)
	}
	if err := fsys.Unmount(); err != nil {
		t.Fatalf("second Unmount should be a no-op, got: %v", err)
	}
}

func TestCreateAndLookupRoundTrip(t *testing.T) {
	fsys, drv := mountFresh(t)
	cache := fsys.Cache()

	if _, err := cache.CreateChild(fsys.Root().Inode, "dir1", TypeDir); err != nil {
		t.Fatalf("CreateChild(dir1): %v", err)
	}
	fileDentry, err := cache.CreateChild(fsys.Root().Inode, "file1", TypeRegFile)
	if err != nil {
		t.Fatalf("CreateChild(file1): %v", err)
	}
	if err := cache.WriteFile(fileDentry.Inode, []byte("hello newfs")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := fsys.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}

	fsys2, err := Mount(drv, Options{})
	if err != nil {
		t.Fatalf("remount: %v", err)
	}
	defer fsys2.Unmount()

	d, found, isRoot, err := fsys2.Cache().Lookup("/dir1")
	if err != nil {
		t.Fatalf("Lookup(/dir1): %v", err)
	}
	if !found || isRoot {
		t.Fatalf("Lookup(/dir1) = found=%v isRoot=%v, want found=true isRoot=false", found, isRoot)
	}
	if !d.Inode.Type.IsDir() {
		t.Errorf("/dir1 type = %s, want DIR", d.Inode.Type)
	}

	d, found, _, err = fsys2.Cache().Lookup("/file1")
	if err != nil {
		t.Fatalf("Lookup(/file1): %v", err)
	}
	if !found {
		t.Fatal("Lookup(/file1) not found after remount")
	}
	if got := string(d.Inode.Data[:d.Inode.Size]); got != "hello newfs" {
		t.Errorf("file1 contents = %q, want %q", got, "hello newfs")
	}
}

func TestCreateChildRejectsDuplicateName(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	if _, err := cache.CreateChild(fsys.Root().Inode, "dup", TypeRegFile); err != nil {
		t.Fatalf("first CreateChild: %v", err)
	}
	if _, err := cache.CreateChild(fsys.Root().Inode, "dup", TypeRegFile); err != ErrExists {
		t.Errorf("second CreateChild(dup) = %v, want ErrExists", err)
	}
}

func TestChildListHeadInsertionOrder(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	root := fsys.Root().Inode

	for _, name := range []string{"a", "b", "c"} {
		if _, err := cache.CreateChild(root, name, TypeRegFile); err != nil {
			t.Fatalf("CreateChild(%s): %v", name, err)
		}
	}

	want := []string{"c", "b", "a"}
	for i, name := range want {
		d, ok := cache.GetChild(root, i)
		if !ok {
			t.Fatalf("GetChild(root, %d) not found", i)
		}
		if d.Name != name {
			t.Errorf("GetChild(root, %d).Name = %q, want %q (head-insertion reverses creation order)", i, d.Name, name)
		}
	}
	if _, ok := cache.GetChild(root, 3); ok {
		t.Error("GetChild(root, 3) should be out of range")
	}
}

func TestWriteFileRejectsOversizedData(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	d, err := cache.CreateChild(fsys.Root().Inode, "big", TypeRegFile)
	if err != nil {
		t.Fatalf("CreateChild: %v", err)
	}
	tooBig := make([]byte, DataPerFile*testSzIO+1)
	if err := cache.WriteFile(d.Inode, tooBig); err != ErrNoSpace {
		t.Errorf("WriteFile(oversized) = %v, want ErrNoSpace", err)
	}
}

func TestAllocInodeExhaustion(t *testing.T) {
	fsys, _ := mountFresh(t)
	cache := fsys.Cache()
	root := fsys.Root().Inode

	count := 0
	for {
		name := "f" + string(rune('a'+count%26)) + string(rune('0'+count/26))
		if _, err := cache.CreateChild(root, name, TypeRegFile); err != nil {
			if err != ErrNoSpace {
				t.Fatalf("CreateChild(#%d): unexpected error %v", count, err)
			}
			break
		}
		count++
		if count > fsys.cache.layout.MaxIno+10 {
			t.Fatal("AllocInode never returned ErrNoSpace")
		}
	}
	if count == 0 {
		t.Fatal("expected to create at least one child before exhaustion")
	}
}
