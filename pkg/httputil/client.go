// Package httputil builds the outbound HTTP client used for catalog calls.
package httputil

import (
	"net/http"
	"time"
)

const (
	maxIdleConns        = 10
	maxIdleConnsPerHost = 4
	idleConnTimeout     = 30 * time.Second

	// UserAgent identifies outbound requests to the catalog service.
	UserAgent = "VibeFlix/1.0 (+https://github.com/SAACyberV99/VibeFlix)"
)

// userAgentTransport stamps UserAgent on requests that do not carry one.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	return t.next.RoundTrip(r)
}

// NewHTTPClient creates a pooled client. A zero timeout means requests are
// bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: userAgentTransport{next: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		}},
	}
}
