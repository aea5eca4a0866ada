package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
)

// RateObserver tracks the rate budget GitHub reports in response headers. It
// never delays or re-sends a request.
type RateObserver struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	observed  bool
	lowWarn   int
}

func NewRateObserver() *RateObserver {
	return &RateObserver{lowWarn: 100}
}

func (r *RateObserver) Snapshot() RateLimit {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RateLimit{Remaining: r.remaining, Reset: r.reset, Observed: r.observed}
}

func (r *RateObserver) updateFromHeaders(headers http.Header) {
	remaining := headers.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}
	val, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remaining = val
	r.observed = true

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if secs, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(secs, 0)
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateObserver] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateObserver) Filter(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		r.updateFromHeaders(resp.Header)
		return resp, nil
	})
}
