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

// Package jsonrpc hooks jrpc2 method handlers into the exception signal.
package jsonrpc

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"

	"github.com/beaconhq/beacon-go/internal/signal"
)

// WrapHandler reports handler errors and recovered panics through the hub,
// tagged with the RPC method name. Panics are converted into errors so the
// server keeps serving.
func WrapHandler(hub signal.Hub, next jrpc2.Handler) jrpc2.Handler {
	return func(ctx context.Context, req *jrpc2.Request) (result any, err error) {
		method := ""
		if req != nil {
			method = req.Method()
		}
		defer func() {
			if recovered := recover(); recovered != nil {
				err = errors.Errorf("panic in %s: %v", method, recovered)
				hub.Emit(signal.ExceptionEvent{Err: err, Tags: map[string]string{"rpc.method": method}})
			}
		}()
		result, err = next(ctx, req)
		if err != nil {
			hub.Emit(signal.ExceptionEvent{Err: err, Tags: map[string]string{"rpc.method": method}})
		}
		return result, err
	}
}

// WrapMap wraps every handler of a method map.
func WrapMap(hub signal.Hub, handlers map[string]jrpc2.Handler) map[string]jrpc2.Handler {
	wrapped := make(map[string]jrpc2.Handler, len(handlers))
	for method, h := range handlers {
		wrapped[method] = WrapHandler(hub, h)
	}
	return wrapped
}
