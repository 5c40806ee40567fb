package newfs

import (
	"bytes"
	"io"
	"io/fs"
	"time"
)

// File and FileDir adapt a loaded Inode to io/fs, the same role a
// squashfs-style File/FileDir pair plays for read-only inspection tools;
// here they back cmd/newfsctl's ls subcommand.
type File struct {
	*io.SectionReader
	inode *Inode
	name  string
}

type FileDir struct {
	inode    *Inode
	name     string
	children []*Dentry
	pos      int
}

type fileinfo struct {
	name  string
	inode *Inode
}

var (
	_ fs.File        = (*File)(nil)
	_ fs.ReadDirFile = (*FileDir)(nil)
	_ fs.FileInfo    = (*fileinfo)(nil)
)

// OpenFile wraps inode (already loaded) as an fs.File. name is used only
// for FileInfo.Name.
func OpenFile(inode *Inode, name string) fs.File {
	if inode.Type == TypeDir {
		var children []*Dentry
		for ch := inode.Children; ch != nil; ch = ch.Sibling {
			children = append(children, ch)
		}
		return &FileDir{inode: inode, name: name, children: children}
	}
	return &File{
		SectionReader: io.NewSectionReader(bytes.NewReader(inode.Data), 0, int64(inode.Size)),
		inode:         inode,
		name:          name,
	}
}

func (f *File) Stat() (fs.FileInfo, error) { return &fileinfo{name: f.name, inode: f.inode}, nil }
func (f *File) Close() error               { return nil }

func (d *FileDir) Stat() (fs.FileInfo, error) { return &fileinfo{name: d.name, inode: d.inode}, nil }
func (d *FileDir) Close() error               { return nil }
func (d *FileDir) Read([]byte) (int, error)   { return 0, &fs.PathError{Op: "read", Path: d.name, Err: ErrIsDir} }

func (d *FileDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := len(d.children) - d.pos
	if n <= 0 {
		n = remaining
	} else if n > remaining {
		n = remaining
	}
	if n == 0 {
		if remaining == 0 && len(d.children) > 0 {
			return nil, io.EOF
		}
		return nil, nil
	}
	out := make([]fs.DirEntry, 0, n)
	for i := 0; i < n; i++ {
		child := d.children[d.pos]
		d.pos++
		out = append(out, fs.FileInfoToDirEntry(&fileinfo{name: child.Name, inode: child.Inode}))
	}
	return out, nil
}

func (fi *fileinfo) Name() string { return fi.name }
func (fi *fileinfo) Size() int64 {
	if fi.inode == nil {
		return 0
	}
	return int64(fi.inode.Size)
}
func (fi *fileinfo) Mode() fs.FileMode {
	if fi.inode == nil {
		return fs.ModeIrregular
	}
	return fi.inode.Type.Mode()
}
func (fi *fileinfo) ModTime() time.Time { return time.Time{} }
func (fi *fileinfo) IsDir() bool        { return fi.inode != nil && fi.inode.Type.IsDir() }
func (fi *fileinfo) Sys() interface{}   { return fi.inode }
