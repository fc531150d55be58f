package projectfile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec compresses and decompresses one project archive format.
type Codec struct {
	Name string
	// Ext is the final extension that selects this codec, e.g. ".gz".
	Ext string

	newReader func(r io.Reader) (io.ReadCloser, string, error)
	newWriter func(w io.Writer, name string) (io.WriteCloser, error)
}

var codecs = []Codec{
	{
		Name: "gzip",
		Ext:  ".gz",
		newReader: func(r io.Reader) (io.ReadCloser, string, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, "", err
			}
			return zr, zr.Name, nil
		},
		newWriter: func(w io.Writer, name string) (io.WriteCloser, error) {
			zw := gzip.NewWriter(w)
			zw.Name = name
			return zw, nil
		},
	},
	{
		Name: "zstd",
		Ext:  ".zst",
		newReader: func(r io.Reader) (io.ReadCloser, string, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, "", err
			}
			return dec.IOReadCloser(), "", nil
		},
		newWriter: func(w io.Writer, _ string) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
	},
}

// CodecFor picks the codec from the final extension of path.
func CodecFor(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range codecs {
		if c.Ext == ext {
			return c, nil
		}
	}
	return Codec{}, fmt.Errorf("unsupported project archive extension %q", ext)
}

// Decompress returns a reader over the payload of r and the payload name
// stored in the archive header, if the format records one.
func (c Codec) Decompress(r io.Reader) (io.ReadCloser, string, error) {
	return c.newReader(r)
}

// Compress returns a writer that compresses into w. The caller must Close it.
func (c Codec) Compress(w io.Writer, name string) (io.WriteCloser, error) {
	return c.newWriter(w, name)
}
