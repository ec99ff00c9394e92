// Package cnb fetches exchange rates and policy rates published by the
// Czech National Bank and implements debtledger.RateSource on top of them.
package cnb

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/debtledger"
)

// diskCache is a disk cache for HTTP responses. The cache key includes the
// current day, so entries in the local tmp dir expire daily; the bank
// publishes one table per trading day and re-fetching more often is wasteful.
type diskCache struct {
	base http.RoundTripper
}

func cacheFile(req *http.Request) string {
	key := fmt.Sprintf("cnb %s %s %s", debtledger.Today(), req.Method, req.URL)
	return filepath.Join(os.TempDir(), fmt.Sprintf("%x", sha1.Sum([]byte(key))))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := cacheFile(req)
	if content, err := os.ReadFile(file); err == nil { // cache hit
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err == nil {
		err = os.WriteFile(file, content, 0o644)
	}
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// daily returns a client whose responses are cached until the end of the day.
func daily() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}
