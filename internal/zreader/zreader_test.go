package zreader

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

const doc = `usr/bin/example    utils/example
usr/share/doc/example/README    utils/example
`

func TestRoundtrip(t *testing.T) {
	tt := []struct {
		Name     string
		Compress func(t *testing.T, in []byte) []byte
	}{
		{
			Name: "None",
			Compress: func(_ *testing.T, in []byte) []byte {
				return in
			},
		},
		{
			Name: "Gzip",
			Compress: func(t *testing.T, in []byte) []byte {
				var buf bytes.Buffer
				w := gzip.NewWriter(&buf)
				if _, err := w.Write(in); err != nil {
					t.Fatal(err)
				}
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}
				return buf.Bytes()
			},
		},
		{
			Name: "Zstd",
			Compress: func(t *testing.T, in []byte) []byte {
				var buf bytes.Buffer
				w, err := zstd.NewWriter(&buf)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := w.Write(in); err != nil {
					t.Fatal(err)
				}
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}
				return buf.Bytes()
			},
		},
		{
			Name: "Xz",
			Compress: func(t *testing.T, in []byte) []byte {
				var buf bytes.Buffer
				w, err := xz.NewWriter(&buf)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := w.Write(in); err != nil {
					t.Fatal(err)
				}
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}
				return buf.Bytes()
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			in := tc.Compress(t, []byte(doc))
			z, err := Reader(bytes.NewReader(in))
			if err != nil {
				t.Fatal(err)
			}
			defer z.Close()
			got, err := io.ReadAll(z)
			if err != nil {
				t.Fatal(err)
			}
			if !cmp.Equal(string(got), doc) {
				t.Error(cmp.Diff(string(got), doc))
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tt := []struct {
		Name string
		In   []byte
		Want Compression
	}{
		{Name: "Empty", In: nil, Want: KindNone},
		{Name: "Short", In: []byte("hi"), Want: KindNone},
		{Name: "Plain", In: []byte(doc), Want: KindNone},
		{Name: "Gzip", In: []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}, Want: KindGzip},
		{Name: "Zstd", In: []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00, 0x00}, Want: KindZstd},
		{Name: "Xz", In: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, Want: KindXz},
		{Name: "Bzip2", In: []byte("BZh91AY"), Want: KindBzip2},
	}
	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := Detect(bufio.NewReader(bytes.NewReader(tc.In)))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.Want {
				t.Errorf("got: %v, want: %v", got, tc.Want)
			}
		})
	}
}

func TestCorrupt(t *testing.T) {
	// Correct magic, garbage payload: the error should surface on the
	// initial header read.
	in := append([]byte{0x1f, 0x8b}, []byte(strings.Repeat("garbage", 4))...)
	if _, err := Reader(bytes.NewReader(in)); err == nil {
		t.Error("expected an error constructing reader over corrupt gzip stream")
	}
}
