//go:build fuse

// Command newfsfuse mounts a newfs image with FUSE. It is example wiring
// for the out-of-scope VFS layer named in spec ยง1, built on
// github.com/hanwen/go-fuse/v2, the same library a read-only squashfs
// image's Inode.Lookup/Open/OpenDir hookup uses at the raw-fuse level --
// adapted here onto the higher-level fs.InodeEmbedder API. The adapter is
// read-only: it implements Lookup, Readdir, Open, Read and Getattr, and no
// write, create or mkdir operations.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/zsdliang/newfs"
	"github.com/zsdliang/newfs/blockdev"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: newfsfuse <image> <mountpoint>\n")
		os.Exit(1)
	}
	image, mountpoint := os.Args[1], os.Args[2]

	drv := &blockdev.FileDriver{BlockSize: 512}
	fsys, err := newfs.Mount(drv, newfs.Options{Device: image})
	if err != nil {
		log.Fatalf("mount: %s", err)
	}
	defer fsys.Unmount()

	root := &node{fsys: fsys, d: fsys.Root()}
	server, err := fs.Mount(mountpoint, root, &fs.Options{})
	if err != nil {
		log.Fatalf("fuse mount: %s", err)
	}
	server.Wait()
}

// node adapts a newfs.Dentry to go-fuse's InodeEmbedder.
type node struct {
	fs.Inode
	fsys *newfs.FS
	d    *newfs.Dentry
}

var (
	_ fs.NodeLookuper  = (*node)(nil)
	_ fs.NodeReaddirer = (*node)(nil)
	_ fs.NodeOpener    = (*node)(nil)
	_ fs.NodeReader    = (*node)(nil)
	_ fs.NodeGetattrer = (*node)(nil)
)

func fillAttr(inode *newfs.Inode, out *fuse.Attr) {
	out.Size = uint64(inode.Size)
	out.Mode = newfs.ModeToUnix(inode.Type.Mode()) | 0644
	out.Nlink = 1
}

func (n *node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	fillAttr(n.d.Inode, &out.Attr)
	return 0
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if n.d.Inode == nil || !n.d.Inode.Type.IsDir() {
		return nil, syscall.ENOTDIR
	}
	for child := n.d.Inode.Children; child != nil; child = child.Sibling {
		if child.Name != name {
			continue
		}
		if child.Inode == nil {
			if _, err := n.fsys.Cache().ReadInode(child, child.Ino); err != nil {
				return nil, syscall.EIO
			}
		}
		fillAttr(child.Inode, &out.Attr)
		childNode := &node{fsys: n.fsys, d: child}
		mode := uint32(fuse.S_IFREG)
		if child.Inode.Type.IsDir() {
			mode = fuse.S_IFDIR
		}
		return n.NewInode(ctx, childNode, fs.StableAttr{Mode: mode}), 0
	}
	return nil, syscall.ENOENT
}

func (n *node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	if n.d.Inode == nil || !n.d.Inode.Type.IsDir() {
		return nil, syscall.ENOTDIR
	}
	var entries []fuse.DirEntry
	for child := n.d.Inode.Children; child != nil; child = child.Sibling {
		mode := uint32(fuse.S_IFREG)
		if child.Type.IsDir() {
			mode = fuse.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: child.Name, Mode: mode})
	}
	return fs.NewListDirStream(entries), 0
}

func (n *node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if n.d.Inode == nil || n.d.Inode.Type.IsDir() {
		return nil, 0, syscall.EISDIR
	}
	return nil, 0, 0
}

func (n *node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	if n.d.Inode == nil || n.d.Inode.Type.IsDir() {
		return nil, syscall.EISDIR
	}
	data := n.d.Inode.Data[:n.d.Inode.Size]
	if off >= int64(len(data)) {
		return fuse.ReadResultData(nil), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return fuse.ReadResultData(data[off:end]), 0
}
