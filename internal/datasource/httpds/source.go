package httpds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"o3ddl/internal/datasource"
)

// DefaultMaxBytes caps a fetched document. Full O3 documents are a few MB.
const DefaultMaxBytes int64 = 64 << 20

// ErrTooLarge is returned when a document exceeds the configured cap.
var ErrTooLarge = errors.New("document exceeds size limit")

// Source is a datasource.Source for one document URL.
type Source struct {
	client   *Client
	url      string
	maxBytes int64
}

// NewSource binds client to url. maxBytes <= 0 selects DefaultMaxBytes.
func NewSource(client *Client, url string, maxBytes int64) *Source {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Source{client: client, url: url, maxBytes: maxBytes}
}

// IsURL reports whether s names an http or https document.
func IsURL(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// URL returns the bound document URL.
func (s *Source) URL() string { return s.url }

// Open fetches the document. Non-2xx responses are errors; the body is
// capped at the source's byte limit.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s: %s", s.url, resp.Status, strings.TrimSpace(string(snippet)))
	}
	if resp.ContentLength > s.maxBytes {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w (%d > %d bytes)", s.url, ErrTooLarge, resp.ContentLength, s.maxBytes)
	}
	return &cappedBody{rc: resp.Body, remaining: s.maxBytes, url: s.url}, nil
}

// cappedBody fails the read that crosses the limit instead of truncating,
// so a cut-off document is never parsed as complete.
type cappedBody struct {
	rc        io.ReadCloser
	remaining int64
	url       string
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		var one [1]byte
		for {
			n, err := b.rc.Read(one[:])
			if n > 0 {
				return 0, fmt.Errorf("GET %s: %w", b.url, ErrTooLarge)
			}
			if err != nil {
				return 0, err
			}
		}
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.rc.Read(p)
	b.remaining -= int64(n)
	return n, err
}

func (b *cappedBody) Close() error { return b.rc.Close() }

var _ datasource.Source = (*Source)(nil)
