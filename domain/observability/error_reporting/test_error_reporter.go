package error_reporting

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type testErrorReporter struct{}

// NewTestErrorReporter returns a reporter that only logs. It doubles as the
// last-resort fallback when no backend can be constructed.
func NewTestErrorReporter() ErrorReporter {
	return &testErrorReporter{}
}

func (s *testErrorReporter) FlushErrorReporting() {
}

func (s *testErrorReporter) CaptureError(err error) bool {
	log.Log().Err(err).Msg("An error has been captured by the testing error reporter")
	return true
}

func (s *testErrorReporter) CaptureException(err error, _ *http.Request) bool {
	return s.CaptureError(err)
}
