package newfs

import (
	"bytes"
	"encoding/binary"
	"io"
)

// CompHandler bundles a compress/decompress pair for one Compression tag.
// comp_xz.go/comp_zstd.go register into this from their init() using the
// exact call shapes a squashfs-style compression registry exposes; the
// registry implementation itself is rebuilt here (see DESIGN.md).
type CompHandler struct {
	Compress   func([]byte) ([]byte, error)
	Decompress func(io.Reader) (io.ReadCloser, error)
}

var compHandlers = map[Compression]*CompHandler{}

// RegisterCompHandler installs a full compress+decompress pair for c.
func RegisterCompHandler(c Compression, h *CompHandler) {
	compHandlers[c] = h
}

// RegisterDecompressor installs (or overrides) only the decompress side of
// c's handler, for algorithms wired decompress-only.
func RegisterDecompressor(c Compression, d func(io.Reader) (io.ReadCloser, error)) {
	h, ok := compHandlers[c]
	if !ok {
		h = &CompHandler{}
		compHandlers[c] = h
	}
	h.Decompress = d
}

// MakeDecompressor adapts a decompressor that cannot fail at construction
// time into the error-returning shape the registry stores.
func MakeDecompressor(d func(io.Reader) io.ReadCloser) func(io.Reader) (io.ReadCloser, error) {
	return func(r io.Reader) (io.ReadCloser, error) { return d(r), nil }
}

// MakeDecompressorErr is the identity adapter for decompressors that can
// fail outright (e.g. a malformed header).
func MakeDecompressorErr(d func(io.Reader) (io.ReadCloser, error)) func(io.Reader) (io.ReadCloser, error) {
	return d
}

func compressionAvailable(c Compression) bool {
	if c == CompNone {
		return true
	}
	h, ok := compHandlers[c]
	return ok && h.Compress != nil && h.Decompress != nil
}

// compressedLenTrailer is the number of trailing bytes in a regular file's
// fixed data slot reserved for the compressed-length trailer (SPEC_FULL.md
// ยง GLOSSARY "Compression trailer").
const compressedLenTrailer = 4

func (c *Cache) encodeFileData(inode *Inode) ([]byte, error) {
	full := DataPerFile * c.szIO
	if c.comp == CompNone {
		buf := make([]byte, full)
		copy(buf, inode.Data)
		return buf, nil
	}
	h := compHandlers[c.comp]
	if h == nil || h.Compress == nil {
		return nil, ErrUnsupported
	}
	compressed, err := h.Compress(inode.Data[:inode.Size])
	if err != nil {
		return nil, ErrIO
	}
	if len(compressed) > full-compressedLenTrailer {
		return nil, ErrNoSpace
	}
	buf := make([]byte, full)
	copy(buf, compressed)
	binary.BigEndian.PutUint32(buf[full-compressedLenTrailer:], uint32(len(compressed)))
	return buf, nil
}

func (c *Cache) decodeFileData(raw []byte, size int) ([]byte, error) {
	full := DataPerFile * c.szIO
	if c.comp == CompNone {
		return raw, nil
	}
	h := compHandlers[c.comp]
	if h == nil || h.Decompress == nil {
		return nil, ErrUnsupported
	}
	complen := binary.BigEndian.Uint32(raw[full-compressedLenTrailer:])
	if int(complen) > full-compressedLenTrailer {
		return nil, ErrIO
	}
	rc, err := h.Decompress(bytes.NewReader(raw[:complen]))
	if err != nil {
		return nil, ErrIO
	}
	defer rc.Close()
	out := make([]byte, full)
	if _, err := io.ReadFull(rc, out[:size]); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, ErrIO
	}
	return out, nil
}
