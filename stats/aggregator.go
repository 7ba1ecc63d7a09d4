// Package stats accumulates per-package file counts and answers ranked
// top-N queries over them.
package stats

import "errors"

// ErrInvalidLimit is reported when a ranked query is made with a
// non-positive limit.
var ErrInvalidLimit = errors.New("stats: limit must be a positive integer")

// RankedEntry is one row of a ranked report: a package and the number of
// files it ships.
type RankedEntry struct {
	Package string
	Count   int
}

// Aggregator owns a frequency table of package name to file count.
//
// It is built incrementally by Observe calls and queried with TopN. An
// Aggregator does no I/O and belongs to a single run; nothing is shared or
// persisted.
type Aggregator struct {
	counts   map[string]int
	observed int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{counts: make(map[string]int)}
}

// Observe records one file's package associations. Every distinct package
// named is incremented exactly once; a file jointly owned by several
// packages counts once toward each, and a package repeated on one line does
// not double-count.
func (a *Aggregator) Observe(path string, pkgs []string) {
	switch len(pkgs) {
	case 0:
		return
	case 1:
		a.counts[pkgs[0]]++
	default:
		seen := make(map[string]struct{}, len(pkgs))
		for _, p := range pkgs {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			a.counts[p]++
		}
	}
	a.observed++
}

// Observed reports the number of files recorded so far.
func (a *Aggregator) Observed() int { return a.observed }

// Distinct reports the number of distinct packages seen so far.
func (a *Aggregator) Distinct() int { return len(a.counts) }
