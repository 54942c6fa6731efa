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

// Package handler connects the exception signal to the configured
// reporter.
package handler

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/domain/observability/error_reporting"
	"github.com/beaconhq/beacon-go/internal/signal"

	// register the default reporter backend
	_ "github.com/beaconhq/beacon-go/infrastructure/sentry"
)

type Handler struct {
	c        *config.Config
	m        sync.Mutex
	patterns []string
	filter   *error_reporting.ExclusionFilter
}

func New(c *config.Config) *Handler {
	h := &Handler{c: c}
	h.currentFilter()
	return h
}

// currentFilter re-reads the configured ignore patterns on every call, so
// changes take effect on the next event. The filter and its decision cache
// are only rebuilt when the pattern set actually changed.
func (h *Handler) currentFilter() *error_reporting.ExclusionFilter {
	patterns := h.c.IgnoreExceptions()
	h.m.Lock()
	defer h.m.Unlock()
	if h.filter == nil || !slices.Equal(patterns, h.patterns) {
		h.patterns = patterns
		h.filter = error_reporting.NewExclusionFilter(patterns)
	}
	return h.filter
}

// Register attaches the capture handler to the hub. This is the single
// wiring step a host needs.
func Register(c *config.Config, hub signal.Hub) *Handler {
	h := New(c)
	hub.CreateListener(h.Handle)
	return h
}

// Handle forwards an exception event to the resolved reporter. It never
// panics into the host: capture failures are logged, and if logging
// itself fails a best-effort warning goes to stderr.
func (h *Handler) Handle(event signal.ExceptionEvent) {
	defer func() {
		if r := recover(); r != nil {
			defer func() {
				if recover() != nil {
					_, _ = fmt.Fprintf(os.Stderr, "beacon: unable to process exception: %v\n", r)
				}
			}()
			h.c.Logger().Error().Str("method", "handler.Handle").Msgf("unable to process exception: %v", r)
		}
	}()
	if event.Err == nil {
		return
	}
	if h.currentFilter().Ignored(event.Err) {
		h.c.Logger().Info().
			Str("method", "handler.Handle").
			Str("type", error_reporting.ErrorTypeName(event.Err)).
			Msg("Not capturing exception due to filters")
		return
	}
	reporter := error_reporting.Resolve(h.c)
	reporter.CaptureException(event.Err, event.Request)
}
