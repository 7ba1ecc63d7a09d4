package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sandu-alexandru/package-statistics/stats"
)

// render formats ranked entries into the report text, one numbered line per
// package with the file count in an aligned column.
func render(arch string, entries []stats.RankedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Package statistics for Contents file for %s architecture:\n\n", arch)
	w := tabwriter.NewWriter(&b, 0, 8, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s\t%d\n", i+1, e.Package, e.Count)
	}
	w.Flush()
	return b.String()
}
