package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sandu-alexandru/package-statistics/stats"
)

func TestRender(t *testing.T) {
	entries := []stats.RankedEntry{
		{Package: "fonts-cns11643-pixmaps", Count: 110999},
		{Package: "papirus-icon-theme", Count: 69475},
		{Package: "piglit", Count: 49913},
	}
	got := render("i386", entries)
	want := "Package statistics for Contents file for i386 architecture:\n" +
		"\n" +
		"1. fonts-cns11643-pixmaps  110999\n" +
		"2. papirus-icon-theme      69475\n" +
		"3. piglit                  49913\n"
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
}

func TestRenderEmpty(t *testing.T) {
	got := render("amd64", nil)
	want := "Package statistics for Contents file for amd64 architecture:\n\n"
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
}
