package contents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/quay/zlog"

	"github.com/sandu-alexandru/package-statistics/internal/httputil"
)

// DefaultMirrorRoot is where Contents indices are looked for when no other
// mirror is configured.
const DefaultMirrorRoot = `http://ftp.uk.debian.org/debian/dists/stable/main/`

// ErrNotModified is reported by Fetch when the mirror indicates the index is
// unchanged since the entity tag recorded on a previous fetch.
var ErrNotModified = errors.New("contents: index unchanged")

// Fetcher retrieves compressed Contents indices from a Debian mirror.
//
// A Fetcher remembers the entity tag of every index it has fetched and sends
// it on subsequent requests, the way the mirrors expect. It is safe for
// concurrent use.
type Fetcher struct {
	c    *http.Client
	root *url.URL

	mu    sync.Mutex
	etags map[string]string
}

// NewFetcher returns a Fetcher resolving indices relative to "root". A nil
// client means http.DefaultClient.
func NewFetcher(c *http.Client, root string) (*Fetcher, error) {
	if c == nil {
		c = http.DefaultClient
	}
	u, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("contents: bad mirror root %q: %w", root, err)
	}
	return &Fetcher{
		c:     c,
		root:  u,
		etags: make(map[string]string),
	}, nil
}

// Fetch returns the compressed Contents index for the named architecture.
//
// The caller is responsible for closing the returned stream and for
// decompressing it. Network timeouts come from the configured client or the
// passed Context; nothing is hardcoded here.
func (f *Fetcher) Fetch(ctx context.Context, arch string) (io.ReadCloser, error) {
	if arch == "" {
		return nil, errors.New("contents: empty architecture")
	}
	u, err := f.root.Parse("Contents-" + arch + ".gz")
	if err != nil {
		return nil, fmt.Errorf("contents: unable to construct index URL: %w", err)
	}
	ctx = zlog.ContextWithValues(ctx,
		"component", "contents/Fetcher.Fetch",
		"url", u.String())
	zlog.Debug(ctx).Msg("attempting fetch of Contents index")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	etag := f.etags[u.String()]
	f.mu.Unlock()
	if etag != "" {
		req.Header.Set("if-none-match", etag)
	}

	resp, err := f.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contents: unable to fetch index: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		resp.Body.Close()
		return nil, ErrNotModified
	default:
		defer resp.Body.Close()
		return nil, fmt.Errorf("contents: unable to fetch index: %w",
			httputil.CheckResponse(resp, http.StatusOK))
	}
	if etag := resp.Header.Get("etag"); etag != "" {
		f.mu.Lock()
		f.etags[u.String()] = etag
		f.mu.Unlock()
	}

	zlog.Info(ctx).Msg("fetched Contents index")
	return resp.Body, nil
}
