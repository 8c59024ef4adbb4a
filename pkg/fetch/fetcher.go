package fetch

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

// Result is a successfully fetched page
type Result struct {
	StatusCode   int
	Body         []byte
	LastModified string   // Verbatim Last-Modified header, "" if absent
	FinalURL     *url.URL // URL after redirects
}

// Fetcher issues single HTTP GET requests with a rotating browser identity.
// Transport failures are normalized into the sentinel errors of pkg/utils.
// There is no retry logic here: a failed fetch is reported upward and the
// caller decides whether to skip the page or abort the crawl.
type Fetcher struct {
	client      *http.Client
	maxBodySize int64
	log         *logrus.Logger
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, maxBodySize int64, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:      client,
		maxBodySize: maxBodySize,
		log:         log,
	}
}

// Fetch performs one GET request for the given URL. Redirects are followed
// by the underlying client; any non-2xx/3xx final status is an ErrHTTPStatus
// carrying the status code.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	reqLog := f.log.WithField("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for '%s': %w", utils.ErrRequestCreation, rawURL, err)
	}
	applyBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(rawURL, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d %s fetching '%s'",
			utils.ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode), rawURL)
	}

	body, err := f.readBody(resp, rawURL)
	if err != nil {
		return nil, err
	}

	reqLog.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"bytes":       len(body),
	}).Debug("Fetched page")

	return &Result{
		StatusCode:   resp.StatusCode,
		Body:         body,
		LastModified: resp.Header.Get("Last-Modified"),
		FinalURL:     resp.Request.URL,
	}, nil
}

// readBody reads the response body with a size cap, decoding gzip/deflate
// content encodings the request advertised.
func (f *Fetcher) readBody(resp *http.Response, rawURL string) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip decode from '%s': %w", utils.ErrResponseBodyRead, rawURL, err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	}

	limited := io.LimitReader(reader, f.maxBodySize+1) // +1 to detect exceeding the limit
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body from '%s': %w", utils.ErrResponseBodyRead, rawURL, err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: page '%s' exceeds max size (%d bytes)", utils.ErrResponseBodyRead, rawURL, f.maxBodySize)
	}
	return body, nil
}

// classifyTransportError maps pre-response failures onto the error taxonomy:
// timeouts, connection failures, and a request catch-all. Context errors
// pass through untouched so callers can distinguish cancellation.
func classifyTransportError(rawURL string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: fetching '%s': %w", utils.ErrTimeout, rawURL, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "reset by peer") ||
		strings.Contains(msg, "tls") {
		return fmt.Errorf("%w: fetching '%s': %w", utils.ErrConnection, rawURL, err)
	}

	return fmt.Errorf("%w: fetching '%s': %w", utils.ErrRequest, rawURL, err)
}
