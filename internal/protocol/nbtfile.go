package protocol

import (
	"compress/gzip"
	"io"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// ReadGzipCompound reads a gzip-wrapped NBT document, the on-disk form
// used by level and region files. The NBT codec itself never sees the
// gzip framing; this is a thin wrapper around DecodeRoot.
func ReadGzipCompound(r io.Reader) (string, Tag, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return "", nil, choadraerr.NewDecode("gzip nbt", err)
	}
	defer gz.Close()

	return DecodeRoot(NewReader(gz))
}

// WriteGzipCompound writes name/tag as gzip-wrapped NBT.
func WriteGzipCompound(w io.Writer, name string, tag Tag) error {
	gz := gzip.NewWriter(w)

	if err := EncodeRoot(NewWriter(gz), name, tag); err != nil {
		gz.Close()
		return err
	}

	if err := gz.Close(); err != nil {
		return choadraerr.NewEncode("gzip nbt", err)
	}

	return nil
}
