//go:build zstd

package newfs

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

func zstdCompress(buf []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := zstd.NewWriter(&out)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(buf); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func init() {
	// A read-only squashfs image only ever needs the decompress side
	// registered (RegisterDecompressor + MakeDecompressor(zstd.ZipDecompressor())).
	// newfs needs a working compress side too, since it's writable;
	// RegisterCompHandler supplies both here instead.
	RegisterCompHandler(CompZstd, &CompHandler{
		Compress:   zstdCompress,
		Decompress: MakeDecompressor(zstd.ZipDecompressor()),
	})
}
