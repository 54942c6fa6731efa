package sentry

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/domain/observability/error_reporting"
)

// A Sentry implementation of our error reporter that respects the user
// preference regarding error reporting
type sentryErrorReporter struct {
	c *config.Config
}

func NewErrorReporter(c *config.Config) error_reporting.ErrorReporter {
	return newErrorReporter(c, error_reporting.OptionsFromConfig(c))
}

func newErrorReporter(c *config.Config, o error_reporting.Options) error_reporting.ErrorReporter {
	initializeSentry(c, o)
	return &sentryErrorReporter{c: c}
}

func (s *sentryErrorReporter) FlushErrorReporting() {
	// Set the timeout to the maximum duration the program can afford to wait
	sentry.Flush(2 * time.Second)
}

func (s *sentryErrorReporter) CaptureError(err error) bool {
	return s.CaptureException(err, nil)
}

func (s *sentryErrorReporter) CaptureException(err error, req *http.Request) bool {
	if !s.c.IsErrorReportingEnabled() {
		return false
	}
	hub := sentry.CurrentHub().Clone()
	if req != nil {
		hub.Scope().SetRequest(req)
	}
	eventId := hub.CaptureException(err)
	s.c.Logger().Info().Err(err).Str("method", "CaptureException").Msgf("Sent error to Sentry (ID: %v)", eventId)
	return true
}
