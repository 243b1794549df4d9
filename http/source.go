// Package http fetches query documents over HTTP.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"
)

var (
	// ErrNotModified is returned by Fetch when the server reports that the
	// document has not changed since the previous fetch.
	ErrNotModified = errors.New("http: not modified")

	// ErrUnexpectedStatus is returned for responses other than 200 and 304.
	ErrUnexpectedStatus = errors.New("http: unexpected status")

	// ErrTooLarge is returned when a response body exceeds the size limit.
	ErrTooLarge = errors.New("http: response too large")
)

// Source fetches a document from a URL. It remembers the validators of the
// last successful fetch and sends them on the next one, so a polling caller
// only downloads changed documents.
type Source struct {
	url      string
	client   *nethttp.Client
	headers  nethttp.Header
	maxBytes int64

	mu           sync.Mutex
	etag         string
	lastModified string
}

// Option configures a Source.
type Option func(*Source)

// WithClient sets the HTTP client used for requests.
func WithClient(client *nethttp.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithHeaders sets additional headers on each request.
func WithHeaders(headers nethttp.Header) Option {
	return func(s *Source) {
		if headers == nil {
			return
		}
		s.headers = headers.Clone()
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(s *Source) {
		if s.headers == nil {
			s.headers = make(nethttp.Header)
		}
		s.headers.Set(key, value)
	}
}

// WithMaxBytes limits the response body size. Zero or negative disables
// the limit.
func WithMaxBytes(n int64) Option {
	return func(s *Source) {
		s.maxBytes = n
	}
}

// NewSource creates a Source for url.
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:    url,
		client: nethttp.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = nethttp.DefaultClient
	}
	return s
}

// URL returns the document URL.
func (s *Source) URL() string {
	return s.url
}

// Fetch downloads the document. After a successful fetch, later calls are
// conditional and return ErrNotModified when the server answers 304.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	req, err := s.newRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case nethttp.StatusOK:
		// ok
	case nethttp.StatusNotModified:
		return nil, ErrNotModified
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := s.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.etag = resp.Header.Get("ETag")
	s.lastModified = resp.Header.Get("Last-Modified")
	s.mu.Unlock()
	return body, nil
}

// Open fetches the document and returns it as a reader.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	body, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Fetch downloads the document at url.
func Fetch(ctx context.Context, url string, opts ...Option) ([]byte, error) {
	return NewSource(url, opts...).Fetch(ctx)
}

func (s *Source) readBody(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, s.maxBytes)
	}
	return body, nil
}

func (s *Source) newRequest(ctx context.Context) (*nethttp.Request, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	// Documents may be zstd-compressed; keep the bytes exactly as served
	// so digests match.
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "identity")
	}

	s.mu.Lock()
	etag, lastModified := s.etag, s.lastModified
	s.mu.Unlock()
	if etag != "" && req.Header.Get("If-None-Match") == "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" && req.Header.Get("If-Modified-Since") == "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}
	return req, nil
}
