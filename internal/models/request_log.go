package models

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// * One outgoing GitHub API request as seen by the logging filter
type RequestLog struct {
	ID     int         `json:"id,omitempty"`
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header"`
	SentAt time.Time   `json:"sent_at"`
}

// * RedactedHeader returns a copy of the header set with the credential part of
// * Authorization masked. Sinks that print or persist use it instead of Header.
func (r RequestLog) RedactedHeader() http.Header {
	h := r.Header.Clone()
	if h == nil {
		return http.Header{}
	}
	for i, v := range h.Values("Authorization") {
		scheme, _, found := strings.Cut(v, " ")
		if !found {
			scheme = "credentials"
		}
		h["Authorization"][i] = scheme + " ****"
	}
	return h
}

// * RequestSink receives every request log before the request is dispatched
type RequestSink interface {
	Record(ctx context.Context, entry RequestLog) error
}

// * Journal is the read side of a persistent request sink
type Journal interface {
	RequestSink
	RecentRequests(ctx context.Context, limit int) ([]RequestLog, error)
}
