package github

import (
	"net/http"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
)

// Filter wraps a RoundTripper with one request step.
type Filter func(next http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// chain applies filters so that filters[0] sees the request first.
func chain(base http.RoundTripper, filters ...Filter) http.RoundTripper {
	rt := base
	for i := len(filters) - 1; i >= 0; i-- {
		rt = filters[i](rt)
	}
	return rt
}

// defaultHeader sets name to value unless the request already carries it.
func defaultHeader(name, value string) Filter {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(name) != "" {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set(name, value)
			return next.RoundTrip(req)
		})
	}
}

// basicAuth attaches credentials only to requests for host, so a redirect to
// another host never receives the token.
func basicAuth(creds Credentials, host string) Filter {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if !strings.EqualFold(req.URL.Host, host) {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.SetBasicAuth(creds.Username, creds.Token)
			return next.RoundTrip(req)
		})
	}
}

// logRequest hands the request to every sink before it is sent. A failing
// sink is reported and skipped.
func logRequest(sinks ...models.RequestSink) Filter {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			entry := models.RequestLog{
				Method: req.Method,
				URL:    req.URL.String(),
				Header: req.Header.Clone(),
				SentAt: time.Now().UTC(),
			}

			for _, sink := range sinks {
				if err := sink.Record(req.Context(), entry); err != nil {
					logger.Warn("request sink %T failed: %v", sink, err)
				}
			}

			return next.RoundTrip(req)
		})
	}
}
