package newfs

import "testing"

func TestCompressionStringAndAvailability(t *testing.T) {
	if CompNone.String() != "none" {
		t.Errorf("CompNone.String() = %q, want %q", CompNone.String(), "none")
	}
	if !compressionAvailable(CompNone) {
		t.Error("CompNone must always be available")
	}
	// Without the xz/zstd build tags, neither handler is registered.
	if compressionAvailable(CompXZ) {
		t.Skip("xz handler registered by build tag, skipping negative check")
	}
}

func TestMountRejectsUnavailableCompression(t *testing.T) {
	if compressionAvailable(CompXZ) {
		t.Skip("xz build tag active, CompXZ is available")
	}
	drv := newTestDriver(testSzDisk, testSzIO)
	_, err := Mount(drv, Options{Compression: CompXZ})
	if err != ErrUnsupported {
		t.Errorf("Mount with unavailable compression = %v, want ErrUnsupported", err)
	}
}
