package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/zsdliang/newfs"
	"github.com/zsdliang/newfs/blockdev"
)

const usage = `newfsctl - newfs image CLI tool

Usage:
  newfsctl format <image> <size>        Create and format a new image of <size> bytes
  newfsctl ls <image> [<path>]          List a directory's entries (default "/")
  newfsctl cat <image> <file>           Print a regular file's contents
  newfsctl mkdir <image> <path>         Create a directory
  newfsctl touch <image> <path>         Create an empty regular file
  newfsctl stat <image> <path>          Print an entry's inode metadata
  newfsctl help                         Show this help message
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "format":
		if len(os.Args) < 4 {
			err = fmt.Errorf("missing image path or size")
		} else {
			err = formatImage(os.Args[2], os.Args[3])
		}
	case "ls":
		if len(os.Args) < 3 {
			err = fmt.Errorf("missing image path")
		} else {
			p := "/"
			if len(os.Args) > 3 {
				p = os.Args[3]
			}
			err = listDir(os.Args[2], p)
		}
	case "cat":
		if len(os.Args) < 4 {
			err = fmt.Errorf("missing image path or file")
		} else {
			err = catFile(os.Args[2], os.Args[3])
		}
	case "mkdir":
		if len(os.Args) < 4 {
			err = fmt.Errorf("missing image path or target path")
		} else {
			err = createEntry(os.Args[2], os.Args[3], newfs.TypeDir)
		}
	case "touch":
		if len(os.Args) < 4 {
			err = fmt.Errorf("missing image path or target path")
		} else {
			err = createEntry(os.Args[2], os.Args[3], newfs.TypeRegFile)
		}
	case "stat":
		if len(os.Args) < 4 {
			err = fmt.Errorf("missing image path or target path")
		} else {
			err = statEntry(os.Args[2], os.Args[3])
		}
	case "help":
		fmt.Println(usage)
		return
	default:
		fmt.Printf("Error: Unknown command '%s'\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func mountImage(imagePath string) (*newfs.FS, error) {
	drv := &blockdev.FileDriver{BlockSize: 512}
	return newfs.Mount(drv, newfs.Options{Device: imagePath})
}

func formatImage(imagePath, sizeArg string) error {
	size, err := strconv.ParseInt(sizeArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", sizeArg, err)
	}
	if err := blockdev.CreateImage(imagePath, size); err != nil {
		return err
	}
	fsys, err := mountImage(imagePath)
	if err != nil {
		return err
	}
	return fsys.Unmount()
}

func resolveDir(fsys *newfs.FS, p string) (*newfs.Inode, error) {
	d, found, _, err := fsys.Cache().Lookup(p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, newfs.ErrNotFound
	}
	if !d.Inode.Type.IsDir() {
		return nil, newfs.ErrNotADir
	}
	return d.Inode, nil
}

func listDir(imagePath, p string) error {
	fsys, err := mountImage(imagePath)
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	inode, err := resolveDir(fsys, p)
	if err != nil {
		return err
	}
	f := newfs.OpenFile(inode, path.Base(p))
	dir := f.(fs.ReadDirFile)
	entries, err := dir.ReadDir(-1)
	if err != nil && err != io.EOF {
		return err
	}
	for _, e := range entries {
		typeChar := "-"
		if e.IsDir() {
			typeChar = "d"
		}
		info, _ := e.Info()
		size := int64(0)
		if info != nil {
			size = info.Size()
		}
		fmt.Printf("%s %8d %s\n", typeChar, size, e.Name())
	}
	return nil
}

func catFile(imagePath, p string) error {
	fsys, err := mountImage(imagePath)
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	d, found, _, err := fsys.Cache().Lookup(p)
	if err != nil {
		return err
	}
	if !found {
		return newfs.ErrNotFound
	}
	if d.Inode.Type.IsDir() {
		return newfs.ErrIsDir
	}
	_, err = os.Stdout.Write(d.Inode.Data[:d.Inode.Size])
	return err
}

func createEntry(imagePath, p string, ftype newfs.FileType) error {
	fsys, err := mountImage(imagePath)
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	parentPath := path.Dir(p)
	name := path.Base(p)
	parent, err := resolveDir(fsys, parentPath)
	if err != nil {
		return err
	}
	_, err = fsys.Cache().CreateChild(parent, name, ftype)
	return err
}

func statEntry(imagePath, p string) error {
	fsys, err := mountImage(imagePath)
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	d, found, isRoot, err := fsys.Cache().Lookup(p)
	if err != nil {
		return err
	}
	if !found {
		return newfs.ErrNotFound
	}
	unixMode := newfs.ModeToUnix(d.Inode.Type.Mode())
	fmt.Printf("name:   %s\n", d.Name)
	fmt.Printf("ino:    %d\n", d.Inode.Ino)
	fmt.Printf("type:   %s\n", d.Inode.Type)
	fmt.Printf("size:   %d\n", d.Inode.Size)
	fmt.Printf("mode:   %#o (%s)\n", unixMode, newfs.UnixToMode(unixMode))
	fmt.Printf("is_root: %v\n", isRoot)
	return nil
}
