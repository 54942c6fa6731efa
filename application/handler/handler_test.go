/*
 * © 2026 Beacon Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/domain/observability/error_reporting"
	"github.com/beaconhq/beacon-go/internal/signal"
	"github.com/beaconhq/beacon-go/internal/testutil"
)

type recordingReporter struct {
	captured []error
	requests []*http.Request
}

func (r *recordingReporter) FlushErrorReporting() {}

func (r *recordingReporter) CaptureError(err error) bool {
	return r.CaptureException(err, nil)
}

func (r *recordingReporter) CaptureException(err error, req *http.Request) bool {
	r.captured = append(r.captured, err)
	r.requests = append(r.requests, req)
	return true
}

type panickyReporter struct{}

func (r *panickyReporter) FlushErrorReporting() {}

func (r *panickyReporter) CaptureError(err error) bool { panic("reporter exploded") }

func (r *panickyReporter) CaptureException(err error, req *http.Request) bool {
	panic("reporter exploded")
}

func handlerTestSetup(t *testing.T, reporter error_reporting.ErrorReporter) *config.Config {
	t.Helper()
	c := testutil.UnitTest(t)
	error_reporting.Reset()
	t.Cleanup(error_reporting.Reset)
	c.SetReporterName("recording")
	error_reporting.Register("recording", func(c *config.Config, o error_reporting.Options) (error_reporting.ErrorReporter, error) {
		return reporter, nil
	})
	return c
}

func TestHandle_ForwardsToReporter(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	h := New(c)
	req := httptest.NewRequest(http.MethodGet, "https://example.com/checkout", nil)

	h.Handle(signal.ExceptionEvent{Err: errors.New("boom"), Request: req})

	assert.Len(t, reporter.captured, 1)
	assert.EqualError(t, reporter.captured[0], "boom")
	assert.Same(t, req, reporter.requests[0])
}

func TestHandle_FilteredErrorIsNotForwarded(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	c.SetIgnoreExceptions([]string{"fundamental"})
	h := New(c)

	h.Handle(signal.ExceptionEvent{Err: errors.New("ignored")})

	assert.Empty(t, reporter.captured)
}

func TestHandle_WildcardFilter(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	c.SetIgnoreExceptions([]string{"github.com/pkg/errors.*"})
	h := New(c)

	h.Handle(signal.ExceptionEvent{Err: errors.New("ignored")})

	assert.Empty(t, reporter.captured)
}

func TestHandle_FilterChangeAfterWiringTakesEffect(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	h := New(c)

	c.SetIgnoreExceptions([]string{"fundamental"})
	h.Handle(signal.ExceptionEvent{Err: errors.New("should be filtered")})

	assert.Empty(t, reporter.captured)
}

func TestHandle_FilterChangeCanReenableCapture(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	c.SetIgnoreExceptions([]string{"fundamental"})
	h := New(c)

	h.Handle(signal.ExceptionEvent{Err: errors.New("filtered")})
	c.SetIgnoreExceptions(nil)
	h.Handle(signal.ExceptionEvent{Err: errors.New("captured")})

	assert.Len(t, reporter.captured, 1)
	assert.EqualError(t, reporter.captured[0], "captured")
}

func TestHandle_NilErrorIsDropped(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	h := New(c)

	h.Handle(signal.ExceptionEvent{})

	assert.Empty(t, reporter.captured)
}

func TestHandle_ReporterPanicDoesNotPropagate(t *testing.T) {
	c := handlerTestSetup(t, &panickyReporter{})
	h := New(c)

	assert.NotPanics(t, func() {
		h.Handle(signal.ExceptionEvent{Err: errors.New("boom")})
	})
}

func TestRegister_AttachesListenerToHub(t *testing.T) {
	reporter := &recordingReporter{}
	c := handlerTestSetup(t, reporter)
	hub := signal.NewMockHub()

	Register(c, hub)
	hub.Emit(signal.ExceptionEvent{Err: errors.New("boom")})

	assert.Eventually(t, func() bool {
		return len(reporter.captured) == 1
	}, 2*time.Second, time.Millisecond)
}
