package newfs

import "testing"

func TestSuperblockRoundTrip(t *testing.T) {
	sb := SuperblockDisk{
		Magic:          MagicNum,
		SzUsage:        0,
		MaxIno:         10,
		MapInodeBlks:   1,
		MapInodeOffset: 512,
		MapDataBlks:    1,
		MapDataOffset:  1024,
		InodeBlks:      10,
		InodeOffset:    1536,
		DataOffset:     6656,
	}
	buf, err := sb.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != superblockDiskSize() {
		t.Fatalf("encoded length %d != superblockDiskSize() %d", len(buf), superblockDiskSize())
	}

	var got SuperblockDisk
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != sb {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, sb)
	}
}

func TestInodeRecordRoundTrip(t *testing.T) {
	target, err := nameToBuf("/some/target")
	if err != nil {
		t.Fatalf("nameToBuf: %v", err)
	}
	rec := InodeDisk{Ino: 3, Size: 128, Target: target, DirCnt: 0, Ftype: uint32(TypeSymlink)}
	buf, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got InodeDisk
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != rec {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, rec)
	}
	if name := bufToName(got.Target); name != "/some/target" {
		t.Errorf("bufToName = %q, want %q", name, "/some/target")
	}
}

func TestDentryRecordRoundTrip(t *testing.T) {
	fname, err := nameToBuf("hello.txt")
	if err != nil {
		t.Fatalf("nameToBuf: %v", err)
	}
	rec := DentryDisk{Fname: fname, Ftype: uint32(TypeRegFile), Ino: 7}
	buf, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got DentryDisk
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != rec {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, rec)
	}
}

func TestNameToBufRejectsOversizedName(t *testing.T) {
	long := make([]byte, MaxNameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := nameToBuf(string(long)); err != ErrInval {
		t.Errorf("expected ErrInval for oversized name, got %v", err)
	}
}
