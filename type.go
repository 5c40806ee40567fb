package newfs

import "io/fs"

// FileType is the on-disk file-type tag stored in inode and dentry records.
// Values are bit-exact per spec: FILE=0, DIR=1, REG_FILE=2, SYM_LINK=3.
type FileType uint32

const (
	TypeFile     FileType = iota // unused placeholder type, kept for on-disk value parity
	TypeDir                      // directory
	TypeRegFile                  // regular file
	TypeSymlink                  // symbolic link
)

func (t FileType) String() string {
	switch t {
	case TypeDir:
		return "DIR"
	case TypeRegFile:
		return "REG_FILE"
	case TypeSymlink:
		return "SYM_LINK"
	default:
		return "FILE"
	}
}

func (t FileType) IsDir() bool {
	return t == TypeDir
}

func (t FileType) IsRegFile() bool {
	return t == TypeRegFile
}

func (t FileType) IsSymlink() bool {
	return t == TypeSymlink
}

// Mode returns an fs.FileMode carrying only the type bits for t, used by the
// FUSE adapter and by io/fs.FileInfo implementations.
func (t FileType) Mode() fs.FileMode {
	switch t {
	case TypeDir:
		return fs.ModeDir
	case TypeSymlink:
		return fs.ModeSymlink
	case TypeRegFile:
		return 0
	default:
		return fs.ModeIrregular
	}
}
