package newfs

import "errors"

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrIO is returned when the block driver fails a read or write.
	ErrIO = errors.New("newfs: i/o error")

	// ErrNoSpace is returned when the inode bitmap is exhausted.
	ErrNoSpace = errors.New("newfs: no space left")

	// ErrNotFound reports a path that does not resolve. Lookup itself signals
	// a miss with found=false and a nil error; callers such as newfsctl
	// return ErrNotFound for it.
	ErrNotFound = errors.New("newfs: no such file or directory")

	// ErrNotADir is returned when a directory operation (CreateChild, or a
	// caller's directory check) targets a non-directory inode. Lookup
	// signals a path through a regular file with found=false and a nil error.
	ErrNotADir = errors.New("newfs: not a directory")

	// ErrExists is returned when a create would clobber an existing dentry.
	ErrExists = errors.New("newfs: file exists")

	// ErrInval is returned for malformed arguments (bad path, oversized name, ...).
	ErrInval = errors.New("newfs: invalid argument")

	// ErrUnsupported is returned for operations or on-disk features the core doesn't implement.
	ErrUnsupported = errors.New("newfs: unsupported")

	// ErrAccess is returned for permission failures (reserved for the VFS layer).
	ErrAccess = errors.New("newfs: access denied")

	// ErrIsDir is returned when a file-only operation targets a directory.
	ErrIsDir = errors.New("newfs: is a directory")

	// ErrSeek is returned for invalid seeks against the block driver.
	ErrSeek = errors.New("newfs: invalid seek")

	// ErrNotMounted names the not-mounted condition for callers. No function
	// in this package returns it; Unmount of an unmounted FS returns nil.
	ErrNotMounted = errors.New("newfs: not mounted")

	// ErrInvalidSuper is returned when a superblock fails to decode a plausible layout.
	ErrInvalidSuper = errors.New("newfs: invalid superblock")
)
