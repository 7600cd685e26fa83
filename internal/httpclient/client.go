// Package httpclient builds the tuned http.Client shared by the API client.
package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hanoivibes/jobport/errors"
)

const maxRedirects = 10

// New returns an http.Client with sane transport limits for talking to the
// portal backend: bounded redirects, connection keep-alive, and the given
// overall timeout.
func New(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.Newf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// ValidateBaseURL checks that a configured base URL is usable: absolute,
// http(s), and carrying a host.
func ValidateBaseURL(baseURL string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", baseURL)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.Newf("base URL scheme %q not allowed (want http or https)", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Newf("base URL %q missing host", baseURL)
	}

	return u, nil
}
