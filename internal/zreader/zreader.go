// Package zreader provides a reader that transparently decompresses an
// underlying stream, picking the algorithm by sniffing the leading magic
// bytes.
package zreader

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression is an algorithm detected on a stream.
type Compression int

const (
	// KindNone is an uncompressed stream.
	KindNone Compression = iota
	// KindGzip is a gzip compressed stream.
	KindGzip
	// KindZstd is a zstd compressed stream.
	KindZstd
	// KindXz is an xz compressed stream.
	KindXz
	// KindBzip2 is a bzip2 compressed stream.
	KindBzip2
)

func (c Compression) String() string {
	switch c {
	case KindNone:
		return "none"
	case KindGzip:
		return "gzip"
	case KindZstd:
		return "zstd"
	case KindXz:
		return "xz"
	case KindBzip2:
		return "bzip2"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

var magic = map[Compression][]byte{
	KindGzip:  {0x1f, 0x8b},
	KindZstd:  {0x28, 0xb5, 0x2f, 0xfd},
	KindXz:    {0xfd, '7', 'z', 'X', 'Z', 0x00},
	KindBzip2: {'B', 'Z', 'h'},
}

// Reader returns a ReadCloser that decompresses the stream on "r"
// progressively. Streams not starting with a known magic number are passed
// through unmodified.
//
// Closing the returned ReadCloser does not close "r".
func Reader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	kind, err := Detect(br)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindNone:
		return io.NopCloser(br), nil
	case KindGzip:
		z, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zreader: gzip: %w", err)
		}
		return z, nil
	case KindZstd:
		z, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zreader: zstd: %w", err)
		}
		return z.IOReadCloser(), nil
	case KindXz:
		z, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zreader: xz: %w", err)
		}
		return io.NopCloser(z), nil
	case KindBzip2:
		return io.NopCloser(bzip2.NewReader(br)), nil
	}
	panic("unreachable")
}

// Detect reports the compression on the Reader without consuming any bytes.
// Short streams report KindNone.
func Detect(br *bufio.Reader) (Compression, error) {
	b, err := br.Peek(6)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && len(b) > 0:
	case errors.Is(err, io.EOF):
		return KindNone, nil
	default:
		return KindNone, fmt.Errorf("zreader: unable to peek stream: %w", err)
	}
	for kind, m := range magic {
		if bytes.HasPrefix(b, m) {
			return kind, nil
		}
	}
	return KindNone, nil
}
