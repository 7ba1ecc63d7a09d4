// Command package-statistics reports the Debian packages shipping the most
// files for an architecture, as recorded in the mirror's Contents index.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quay/zlog"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sandu-alexandru/package-statistics/contents"
	"github.com/sandu-alexandru/package-statistics/internal/zreader"
	"github.com/sandu-alexandru/package-statistics/stats"
)

func main() {
	var exit int
	defer func() {
		if exit != 0 {
			os.Exit(exit)
		}
	}()
	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer done()

	fs := flag.NewFlagSet("package-statistics", flag.ExitOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage:\n\t%s [options] architecture [architecture...]\n\nOptions:\n", os.Args[0])
		fs.PrintDefaults()
	}
	topN := fs.Int("n", 10, "number of packages to report")
	outPath := fs.String("o", "", "report file `path` (default <architecture>-report.txt; single architecture only)")
	root := fs.String("root", contents.DefaultMirrorRoot, "mirror root `url` holding the Contents indices")
	timeout := fs.Duration("timeout", 5*time.Minute, "network timeout for the index fetch")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Parse(os.Args[1:])

	lvl := zerolog.InfoLevel
	if *debug {
		lvl = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	zlog.Set(&l)

	archs := fs.Args()
	switch {
	case len(archs) == 0:
		fs.Usage()
		exit = 2
		return
	case *topN <= 0:
		fmt.Fprintf(os.Stderr, "bad value for -n: %d\n", *topN)
		exit = 2
		return
	case *outPath != "" && len(archs) > 1:
		fmt.Fprintln(os.Stderr, "-o cannot be used with multiple architectures")
		exit = 2
		return
	}

	fetcher, err := contents.NewFetcher(&http.Client{Timeout: *timeout}, *root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		exit = 2
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, arch := range archs {
		g.Go(func() error {
			out := *outPath
			if out == "" {
				out = arch + "-report.txt"
			}
			return run(ctx, fetcher, arch, *topN, out)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exit = 1
	}
}

// run executes the pipeline for one architecture: fetch, decompress, parse,
// aggregate, report. Each call owns its Aggregator; nothing is shared
// between architectures.
func run(ctx context.Context, fetcher *contents.Fetcher, arch string, n int, outPath string) error {
	ctx = zlog.ContextWithValues(ctx, "architecture", arch)

	rc, err := fetcher.Fetch(ctx, arch)
	if err != nil {
		return fmt.Errorf("%s: %w", arch, err)
	}
	defer rc.Close()

	z, err := zreader.Reader(rc)
	if err != nil {
		return fmt.Errorf("%s: unable to decompress index: %w", arch, err)
	}
	defer z.Close()

	p := contents.NewParser(z)
	agg := stats.NewAggregator()
	for {
		e, err := p.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: unable to read index: %w", arch, err)
		}
		agg.Observe(e.Path, e.Packages)
	}
	if p.Lines() == 0 {
		return fmt.Errorf("%s: %w", arch, contents.ErrEmptyIndex)
	}
	zlog.Info(ctx).
		Int("lines", p.Lines()).
		Int("malformed", p.Malformed()).
		Int("packages", agg.Distinct()).
		Msg("index parsed")

	top, err := agg.TopN(n)
	if err != nil {
		return fmt.Errorf("%s: %w", arch, err)
	}
	text := render(arch, top)
	fmt.Print(text)
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%s: unable to write report: %w", arch, err)
	}
	zlog.Info(ctx).Str("path", outPath).Msg("report written")
	return nil
}
