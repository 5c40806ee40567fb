package newfs

import (
	"bytes"
	"encoding/binary"
	"log"
	"reflect"
)

// byteOrder is the fixed byte order of the superblock, inode and dentry
// records, so an image written by one machine is readable by any other
// newfs binary. The compression trailer (compress.go) is big-endian.
var byteOrder binary.ByteOrder = binary.LittleEndian

// encodeRecord serializes the exported fields of v, in declaration order,
// with fixed-size binary encoding. This generalizes a squashfs-style
// Superblock.UnmarshalBinary/binarySize reflection walk to all three
// on-disk record shapes this format needs (superblock, inode, dentry).
func encodeRecord(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v).Elem()
	var buf bytes.Buffer
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if err := binary.Write(&buf, byteOrder, f.Interface()); err != nil {
			log.Printf("newfs: failed to encode field %s: %s", rv.Type().Field(i).Name, err)
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeRecord(v interface{}, data []byte) error {
	rv := reflect.ValueOf(v).Elem()
	r := bytes.NewReader(data)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanAddr() || !f.CanInterface() {
			continue
		}
		if err := binary.Read(r, byteOrder, f.Addr().Interface()); err != nil {
			log.Printf("newfs: failed to decode field %s: %s", rv.Type().Field(i).Name, err)
			return err
		}
	}
	return nil
}

func recordSize(v interface{}) int {
	rv := reflect.ValueOf(v).Elem()
	sz := 0
	for i := 0; i < rv.NumField(); i++ {
		sz += int(rv.Type().Field(i).Type.Size())
	}
	return sz
}

// SuperblockDisk is the on-disk superblock record, field order per spec ยง6.
type SuperblockDisk struct {
	Magic          uint32
	SzUsage        uint32
	MaxIno         uint32
	MapInodeBlks   uint32
	MapInodeOffset uint32
	MapDataBlks    uint32
	MapDataOffset  uint32
	InodeBlks      uint32
	InodeOffset    uint32
	DataOffset     uint32
}

func (s *SuperblockDisk) MarshalBinary() ([]byte, error)    { return encodeRecord(s) }
func (s *SuperblockDisk) UnmarshalBinary(data []byte) error { return decodeRecord(s, data) }
func superblockDiskSize() int                               { return recordSize(&SuperblockDisk{}) }

// InodeDisk is the on-disk inode record, field order per spec ยง6:
// ino, size, target_path[128], dir_cnt, ftype.
type InodeDisk struct {
	Ino    uint32
	Size   uint32
	Target [MaxNameLen]byte
	DirCnt uint32
	Ftype  uint32
}

func (r *InodeDisk) MarshalBinary() ([]byte, error)    { return encodeRecord(r) }
func (r *InodeDisk) UnmarshalBinary(data []byte) error { return decodeRecord(r, data) }
func inodeDiskSize() int                               { return recordSize(&InodeDisk{}) }

// DentryDisk is the on-disk dentry record, field order per spec ยง6:
// fname[128], ftype, ino.
type DentryDisk struct {
	Fname [MaxNameLen]byte
	Ftype uint32
	Ino   uint32
}

func (r *DentryDisk) MarshalBinary() ([]byte, error)    { return encodeRecord(r) }
func (r *DentryDisk) UnmarshalBinary(data []byte) error { return decodeRecord(r, data) }
func dentryDiskSize() int                               { return recordSize(&DentryDisk{}) }

// nameToBuf zero-pads name into a fixed MaxNameLen buffer. Returns ErrInval
// if name doesn't fit, mirroring NEWFS_MAX_FILE_NAME enforcement.
func nameToBuf(name string) ([MaxNameLen]byte, error) {
	var buf [MaxNameLen]byte
	if len(name) > len(buf) {
		return buf, ErrInval
	}
	copy(buf[:], name)
	return buf, nil
}

// bufToName trims a fixed-width name buffer at its first zero byte.
func bufToName(buf [MaxNameLen]byte) string {
	n := bytes.IndexByte(buf[:], 0)
	if n < 0 {
		n = len(buf)
	}
	return string(buf[:n])
}
