// Package contents fetches and parses Debian "Contents" indices, the
// per-architecture files mapping installed paths to the packages that ship
// them.
package contents

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quay/zlog"
)

// ErrEmptyIndex is reported when a Contents index yields no usable
// file-to-package associations.
var ErrEmptyIndex = errors.New("contents: no usable file associations in index")

// Entry is one parsed line of a Contents index: a path and the packages that
// ship a file at that path. The same package may appear more than once if the
// index line listed it repeatedly.
type Entry struct {
	Path     string
	Packages []string
}

// Parser is a pull parser over a decompressed Contents index.
//
// It never holds more than one line in memory, so it's safe to point at
// indices that decompress to hundreds of megabytes. A Parser is not
// restartable; parsing again means constructing a new Parser over a fresh
// stream.
type Parser struct {
	s         *bufio.Scanner
	lines     int
	malformed int
}

// Contents lines can get long; some packages ship deeply nested paths and a
// single file can be owned by many packages.
const maxLine = 1024 * 1024

// NewParser returns a Parser reading lines from "r".
func NewParser(r io.Reader) *Parser {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, maxLine), maxLine)
	return &Parser{s: s}
}

// Next returns the next valid entry, or io.EOF once the stream is exhausted.
// Malformed lines are skipped and tallied, never fatal; read errors on the
// underlying stream are.
func (p *Parser) Next(ctx context.Context) (*Entry, error) {
	for p.s.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, ok := parseLine(p.s.Bytes())
		if !ok {
			p.malformed++
			zlog.Debug(ctx).
				Str("component", "contents/Parser.Next").
				Str("line", strings.ToValidUTF8(p.s.Text(), "�")).
				Msg("skipping malformed line")
			continue
		}
		p.lines++
		return e, nil
	}
	if err := p.s.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Lines reports the number of valid entries returned so far.
func (p *Parser) Lines() int { return p.lines }

// Malformed reports the number of lines skipped so far.
func (p *Parser) Malformed() int { return p.malformed }

// parseLine splits one index line into its path and package list.
//
// The path is everything before the final run of whitespace; the remainder is
// a comma-separated list of "area/package" tokens, where the optional area
// prefix is discarded. Lines that don't fit the shape report !ok.
func parseLine(b []byte) (*Entry, bool) {
	if !utf8.Valid(b) {
		return nil, false
	}
	line := strings.TrimRightFunc(string(b), unicode.IsSpace)
	i := strings.LastIndexFunc(line, unicode.IsSpace)
	if i == -1 {
		return nil, false
	}
	path := strings.TrimRightFunc(line[:i], unicode.IsSpace)
	if path == "" {
		return nil, false
	}
	var pkgs []string
	for _, tok := range strings.Split(line[i+1:], ",") {
		tok = strings.TrimSpace(tok)
		if j := strings.LastIndexByte(tok, '/'); j != -1 {
			tok = tok[j+1:]
		}
		if tok == "" {
			continue
		}
		pkgs = append(pkgs, tok)
	}
	if len(pkgs) == 0 {
		return nil, false
	}
	return &Entry{Path: path, Packages: pkgs}, true
}
