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

// Package web hooks the http request path into the exception signal.
package web

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/internal/signal"
)

// Middleware recovers handler panics, emits an exception event with the
// request attached and answers 500. The panic is not re-raised, matching
// the contract that reporting never breaks the request path.
func Middleware(c *config.Config, hub signal.Hub) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err := toError(recovered)
					c.Logger().Error().Err(err).Str("method", "web.Middleware").Msg("recovered handler panic")
					hub.Emit(signal.ExceptionEvent{Err: err, Request: r})
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ReportError lets handlers report non-panic errors with request context.
func ReportError(hub signal.Hub, r *http.Request, err error) {
	if err == nil {
		return
	}
	hub.Emit(signal.ExceptionEvent{Err: err, Request: r})
}

func toError(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return errors.Errorf("%v", recovered)
}
