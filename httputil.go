package balance

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/balance/logger"
)

// contains http utils to deal with remote services

// NewRequest builds a GET request for base joined with path and query. A URL
// that cannot be built is reported as an InvalidTarget error.
func NewRequest(ctx context.Context, p Provider, base, path string, query url.Values) (*http.Request, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, InvalidTargetError(p, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, InvalidTargetError(p, fmt.Errorf("base url %q is not absolute", base))
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, InvalidTargetError(p, err)
	}
	u = u.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, InvalidTargetError(p, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Fetch executes req and returns the whole response body.
//
// Non 2xx responses are classified: a message found in the body is surfaced
// as a GenericMessage error, otherwise an UnexpectedStatus error is returned.
// A request that gets no response at all, or whose body cannot be read,
// yields EmptyResponse.
func Fetch(client *http.Client, p Provider, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	log := logger.FromContext(req.Context())
	resp, err := client.Do(req)
	if err != nil {
		// no response at all, the cause is kept for errors.Is
		return nil, &Error{Kind: EmptyResponse, Provider: p, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("provider", string(p)).
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("http")

	// reading in a buffer to be able to extract a message on failure
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		// truncated body, nothing usable was received
		return nil, &Error{Kind: EmptyResponse, Provider: p, Err: fmt.Errorf("cannot read http body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, ok := Message(buf.Bytes()); ok {
			return nil, MessageError(p, msg)
		}
		return nil, &Error{Kind: UnexpectedStatus, Provider: p, Status: resp.StatusCode}
	}
	return buf.Bytes(), nil
}

// diskCache implements a simple disk cache for HTTP responses, entries
// expire every day.
type diskCache struct {
	base http.RoundTripper
	dir  string // defaults to os.TempDir()
	now  func() time.Time
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	day := c.now().Format(time.DateOnly)
	key := fmt.Sprintf("%s %s %s %s", day, req.Method, req.URL.String(), req.Header.Get("Authorization"))
	key = fmt.Sprintf("balance-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log := logger.FromContext(req.Context())
		log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o600)
}

// DailyClient returns an http.Client whose successful responses are cached
// on disk in dir for the rest of the day. An empty dir uses os.TempDir().
func DailyClient(dir string) *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport, dir: dir, now: time.Now}
	return client
}
