package github

import (
	"context"
	"slices"

	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
)

// LoggerSink prints each request line and its headers through pkg/logger.
// The Authorization value is printed masked ("Basic ****"); every other header
// is printed as sent.
type LoggerSink struct{}

func (LoggerSink) Record(_ context.Context, entry models.RequestLog) error {
	logger.Info("Request: %s %s", entry.Method, entry.URL)

	header := entry.RedactedHeader()
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		for _, value := range header[name] {
			logger.Info("%s=%s", name, value)
		}
	}
	return nil
}
